package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/swingtree/strategy"
	"github.com/rustyeddy/swingtree/tree"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "BTC-USD", cfg.Exchange.Pair)
	assert.Equal(t, "minimum", cfg.Bot.Mode)
	assert.Equal(t, 100, cfg.Bot.HistoryLength)
	assert.Equal(t, 0.95, cfg.Bot.Buy)
	assert.Equal(t, 1.05, cfg.Bot.Sell)
	assert.NoError(t, cfg.Validate())

	d, err := cfg.IntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"missing pair", func(c *Config) { c.Exchange.Pair = "" }, "exchange.pair is required"},
		{"bad timeout", func(c *Config) { c.Exchange.Timeout = "soon" }, "exchange.timeout"},
		{"unknown mode", func(c *Config) { c.Bot.Mode = "average" }, "bot.mode"},
		{"zero history", func(c *Config) { c.Bot.HistoryLength = 0 }, "bot.history_length must be at least 1"},
		{"bad interval", func(c *Config) { c.Bot.Interval = "often" }, "bot.interval"},
		{"negative interval", func(c *Config) { c.Bot.Interval = "-1s" }, "bot.interval must be positive"},
		{"negative max steps", func(c *Config) { c.Bot.MaxSteps = -1 }, "bot.max_steps"},
		{"buy above one", func(c *Config) { c.Bot.Buy = 1.2 }, "buy_threshold"},
		{"sell below one", func(c *Config) { c.Bot.Sell = 0.9 }, "sell_threshold"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "kafka" }, "journal.type"},
		{"csv without files", func(c *Config) { c.Journal.SignalsFile = "" }, "required for CSV type"},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite" }, "db_path required"},
		{"journal none", func(c *Config) { c.Journal = JournalConfig{Type: "none"} }, ""},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateModeErrorKind(t *testing.T) {
	cfg := Default()
	cfg.Bot.Mode = "median"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tree.ErrInvalidOperation))
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			cfg := Default()
			cfg.Bot.Mode = "sum"
			cfg.Bot.Thresholds = strategy.Thresholds{Buy: 0.9, Sell: 1.1}
			path := filepath.Join(tmpDir, "test"+ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Exchange, loaded.Exchange)
			assert.Equal(t, cfg.Bot, loaded.Bot)
			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, cfg.Log, loaded.Log)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	data := `
exchange:
  pair: ETH-USD
bot:
  mode: max
  history_length: 10
  interval: 30s
  buy_threshold: 0.97
  sell_threshold: 1.03
journal:
  type: sqlite
  db_path: ./swingtree.db
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ETH-USD", cfg.Exchange.Pair)
	assert.Equal(t, "max", cfg.Bot.Mode)
	assert.Equal(t, 10, cfg.Bot.HistoryLength)
	assert.Equal(t, 0.97, cfg.Bot.Buy)
	assert.Equal(t, 1.03, cfg.Bot.Sell)
	assert.Equal(t, "sqlite", cfg.Journal.Type)

	d, err := cfg.IntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exchange: [unterminated"), 0600))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("COINBASE_API_KEY=from-file\n"), 0600))

	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPISecret, "from-env")
	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))

	assert.Equal(t, "from-file", cfg.Exchange.APIKey)
	assert.Equal(t, "from-env", cfg.Exchange.APISecret)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestApplyEnvMissingFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "warn", cfg.Log.Level)
}
