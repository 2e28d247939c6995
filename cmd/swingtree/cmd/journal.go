package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/swingtree/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the bot journal",
	Long: `Query and display records from a SQLite bot journal.

Subcommands:
  signal        - Show one signal by ID
  signals       - List signals recorded within a time window
  observations  - List the most recent observations of a pair

Examples:
  swingtree journal signal 01HV3K8Z9Q...
  swingtree journal signals --since 24h
  swingtree journal observations --pair BTC-USD --limit 20`,
}

var journalSignalCmd = &cobra.Command{
	Use:   "signal <signal-id>",
	Short: "Show one signal",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSignal,
}

var journalSignalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "List recent signals",
	Args:  cobra.NoArgs,
	RunE:  runJournalSignals,
}

var journalObservationsCmd = &cobra.Command{
	Use:   "observations",
	Short: "List recent observations",
	Args:  cobra.NoArgs,
	RunE:  runJournalObservations,
}

var (
	journalDBPath string
	journalSince  time.Duration
	journalPair   string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSignalCmd)
	journalCmd.AddCommand(journalSignalsCmd)
	journalCmd.AddCommand(journalObservationsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./swingtree.db", "path to SQLite journal DB")
	journalSignalsCmd.Flags().DurationVar(&journalSince, "since", 24*time.Hour, "how far back to look")
	journalObservationsCmd.Flags().StringVarP(&journalPair, "pair", "p", "BTC-USD", "trading pair")
	journalObservationsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of rows")
}

func runJournalSignal(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	s, err := j.GetSignal(args[0])
	if err != nil {
		return fmt.Errorf("get signal: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatSignalOrg(s))
	return nil
}

func runJournalSignals(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	end := time.Now()
	recs, err := j.ListSignalsBetween(end.Add(-journalSince), end)
	if err != nil {
		return fmt.Errorf("query signals: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatSignalsOrg(recs))
	return nil
}

func runJournalObservations(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	recs, err := j.ListObservations(journalPair, journalLimit)
	if err != nil {
		return fmt.Errorf("query observations: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s  %-10s  %14s  %14s  %s\n", "TIME", "PAIR", "PRICE", "TREND", "MODE")
	for _, o := range recs {
		fmt.Fprintf(out, "%-20s  %-10s  %14.2f  %14.2f  %s\n",
			o.Time.UTC().Format(time.RFC3339), o.Pair, o.Price, o.Trend, o.Mode)
	}
	return nil
}
