package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swingtree",
	Short: "Rolling price trends backed by a segment tree",
	Long: `Swingtree keeps a rolling window of exchange prices in an aggregation
tree and reports buying and selling opportunities against the trend.

It provides tools for:
  - Polling Coinbase spot prices or replaying them from CSV
  - Running range queries over ad-hoc series
  - Managing bot configuration files
  - Reviewing journaled signals`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
