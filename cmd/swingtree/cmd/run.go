package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/swingtree/bot"
	"github.com/rustyeddy/swingtree/coinbase"
	"github.com/rustyeddy/swingtree/config"
	"github.com/rustyeddy/swingtree/internal/logger"
	"github.com/rustyeddy/swingtree/journal"
	"github.com/rustyeddy/swingtree/pricing"
	"github.com/rustyeddy/swingtree/replay"
	"github.com/rustyeddy/swingtree/series"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the price bot from a config file",
	Long: `Poll a trading pair, maintain the rolling trend and report buying and
selling opportunities. No orders are placed.

Prices come from the Coinbase spot endpoint by default. Use --source csv to
replay a time,pair,price file instead; the run ends when the file does.

Example:
  swingtree run -f swingtree.yaml
  swingtree run -f swingtree.yaml --source csv --csv data/btc.csv --steps 500`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSource     string
	runCSVPath    string
	runSteps      int
	runEnvFile    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().StringVar(&runSource, "source", "coinbase", "price source (coinbase, csv)")
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "price CSV for --source csv")
	runCmd.Flags().IntVar(&runSteps, "steps", 0, "stop after N steps (overrides bot.max_steps)")
	runCmd.Flags().StringVar(&runEnvFile, "env", ".env", "dotenv file with exchange credentials")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(runEnvFile); err != nil {
		return err
	}

	log, closeLog, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closeLog()

	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return fmt.Errorf("price source: %w", err)
	}
	defer closeSrc()

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	bc, err := botConfig(cfg)
	if err != nil {
		return err
	}
	if runSteps > 0 {
		bc.MaxSteps = runSteps
	}

	b, err := bot.New(bc, src, j, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running %s bot on %s (history %d, every %s)\n\n", bc.Mode, bc.Pair, bc.HistoryLength, bc.Interval)

	if err := b.Run(ctx); err != nil {
		return err
	}

	trend, err := b.Snapshot()
	if err != nil {
		log.Warn("no prices observed", "err", err)
		return nil
	}
	fmt.Fprintf(out, "\nFinal %s trend over %d prices: %.2f\n", bc.Mode, len(b.Prices()), trend)
	return nil
}

func botConfig(cfg *config.Config) (bot.Config, error) {
	mode, err := series.ParseMode(cfg.Bot.Mode)
	if err != nil {
		return bot.Config{}, err
	}
	interval, err := cfg.IntervalDuration()
	if err != nil {
		return bot.Config{}, err
	}
	return bot.Config{
		Pair:          cfg.Exchange.Pair,
		Mode:          mode,
		HistoryLength: cfg.Bot.HistoryLength,
		Interval:      interval,
		Thresholds:    cfg.Bot.Thresholds,
		MaxSteps:      cfg.Bot.MaxSteps,
	}, nil
}

func openSource(cfg *config.Config) (pricing.Source, func(), error) {
	switch runSource {
	case "coinbase":
		opts := []coinbase.Option{}
		if cfg.Exchange.BaseURL != "" {
			opts = append(opts, coinbase.WithBaseURL(cfg.Exchange.BaseURL))
		}
		timeout, err := cfg.TimeoutDuration()
		if err != nil {
			return nil, nil, err
		}
		if timeout > 0 {
			opts = append(opts, coinbase.WithTimeout(timeout))
		}
		c, err := coinbase.NewClient(cfg.Exchange.APIKey, cfg.Exchange.APISecret, opts...)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil

	case "csv":
		if runCSVPath == "" {
			return nil, nil, fmt.Errorf("--csv is required with --source csv")
		}
		feed, err := replay.NewCSVFeed(runCSVPath)
		if err != nil {
			return nil, nil, err
		}
		return feed, func() { _ = feed.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown source %q (supported: coinbase, csv)", runSource)
	}
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.ObservationsFile, jc.SignalsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.Discard, nil
	}
}
