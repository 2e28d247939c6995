//go:build blackbox

package main_test

import (
	"database/sql"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var swingtreeBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "swingtree-blackbox-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	swingtreeBin = filepath.Join(tmp, "swingtree")

	// Build the binary once for all tests.
	cmd := exec.Command("go", "build", "-o", swingtreeBin, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	cmd := exec.Command(swingtreeBin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %v\nargs: %v\noutput:\n%s", err, args, string(out))
	}
	return string(out)
}

func TestVersion(t *testing.T) {
	out := run(t, "version")
	if !strings.Contains(out, "swingtree version") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestQueryScenario(t *testing.T) {
	out := run(t, "query", "--mode", "min", "--values", "5,2,8,1", "--range", "0:3", "--range", "0:2")
	for _, want := range []string{"minimum [0, 3] = 1", "minimum [0, 2] = 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestConfigInitValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")

	run(t, "config", "init", "-o", path)
	out := run(t, "config", "validate", "-f", path)
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunReplayJournalsToSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "swingtree.db")
	pricesPath := filepath.Join(dir, "prices.csv")
	cfgPath := filepath.Join(dir, "bot.yaml")

	// A flat market with one dip and one spike.
	writePricesCSV(t, pricesPath, "BTC-USD", 60, func(i int) float64 {
		switch i {
		case 30:
			return 90
		case 55:
			return 120
		}
		return 100
	})

	cfg := fmt.Sprintf(`
exchange:
  pair: BTC-USD
bot:
  mode: maximum
  history_length: 10
  interval: 1ms
  buy_threshold: 0.95
  sell_threshold: 1.05
journal:
  type: sqlite
  db_path: %s
log:
  level: warn
`, dbPath)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0600); err != nil {
		t.Fatal(err)
	}

	out := run(t, "run", "-f", cfgPath, "--source", "csv", "--csv", pricesPath, "--env", filepath.Join(dir, "none.env"))
	if !strings.Contains(out, "Final maximum trend over 10 prices: 120.00") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM observations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 60 {
		t.Fatalf("expected 60 observations, got %d", n)
	}

	var action string
	if err := db.QueryRow(`SELECT action FROM signals ORDER BY time LIMIT 1`).Scan(&action); err != nil {
		t.Fatal(err)
	}
	if action != "BUY" {
		t.Fatalf("expected first signal BUY, got %s", action)
	}

	out = run(t, "journal", "observations", "--db", dbPath, "--limit", "3")
	if strings.Count(out, "BTC-USD") != 3 {
		t.Fatalf("expected 3 observation rows, got:\n%s", out)
	}
}

func writePricesCSV(t *testing.T, path, pair string, n int, priceFn func(i int) float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _ = f.WriteString("time,pair,price\n")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		ts := start.Add(time.Minute * time.Duration(i)).Format(time.RFC3339)
		_, _ = fmt.Fprintf(f, "%s,%s,%.2f\n", ts, pair, priceFn(i))
	}
}
