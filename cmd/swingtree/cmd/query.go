package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rustyeddy/swingtree/series"
	"github.com/rustyeddy/swingtree/tree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Build a series and run range queries against it",
	Long: `Build an aggregation series from values given on the command line or
in a YAML file, apply point updates in order, then print each range result
and the final leaf values.

Ranges are inclusive. Updates are index=value.

Examples:
  swingtree query --mode min --values 5,2,8,1 --range 0:3 --range 1:2
  swingtree query --mode sum --values 5,2,8,1 --update 1=10 --range 0:3
  swingtree query --file data.yaml --range 0:9`,
	RunE: runQuery,
}

var (
	queryMode    string
	queryValues  []float64
	queryFile    string
	queryUpdates []string
	queryRanges  []string
)

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVarP(&queryMode, "mode", "m", "minimum", "aggregation mode (minimum, maximum, sum)")
	queryCmd.Flags().Float64SliceVar(&queryValues, "values", nil, "comma separated values")
	queryCmd.Flags().StringVar(&queryFile, "file", "", "YAML file with mode and values")
	queryCmd.Flags().StringArrayVarP(&queryUpdates, "update", "u", nil, "point update index=value (repeatable)")
	queryCmd.Flags().StringArrayVarP(&queryRanges, "range", "r", nil, "inclusive range left:right (repeatable)")
}

// dataFile is the --file layout.
type dataFile struct {
	Mode   string `yaml:"mode"`
	Values []any  `yaml:"values"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	mode := queryMode
	values := queryValues

	if queryFile != "" {
		raw, err := os.ReadFile(queryFile)
		if err != nil {
			return fmt.Errorf("read data file: %w", err)
		}
		var df dataFile
		if err := yaml.Unmarshal(raw, &df); err != nil {
			return fmt.Errorf("parse data file: %w", err)
		}
		values, err = tree.Values(df.Values)
		if err != nil {
			return err
		}
		if df.Mode != "" && !cmd.Flags().Changed("mode") {
			mode = df.Mode
		}
	}

	return query(cmd.OutOrStdout(), mode, values, queryUpdates, queryRanges)
}

func query(out io.Writer, mode string, values []float64, updates, ranges []string) error {
	s, err := series.New(values, mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s)

	for _, u := range updates {
		i, v, err := parseUpdate(u)
		if err != nil {
			return err
		}
		if err := s.UpdateValue(i, v); err != nil {
			return fmt.Errorf("update %s: %w", u, err)
		}
	}

	for _, r := range ranges {
		l, rr, err := parseRange(r)
		if err != nil {
			return err
		}
		got, err := s.RangeQuery(l, rr)
		if err != nil {
			return fmt.Errorf("range %s: %w", r, err)
		}
		fmt.Fprintf(out, "%s [%d, %d] = %s\n", s.Mode(), l, rr, strconv.FormatFloat(got, 'g', -1, 64))
	}

	fmt.Fprintf(out, "snapshot: %v\n", s.Snapshot())
	return nil
}

func parseUpdate(s string) (int, float64, error) {
	idx, val, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("bad update %q (want index=value)", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return 0, 0, fmt.Errorf("bad update index %q: %w", idx, err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad update value %q: %w", val, err)
	}
	return i, v, nil
}

func parseRange(s string) (int, int, error) {
	ls, rs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad range %q (want left:right)", s)
	}
	l, err := strconv.Atoi(strings.TrimSpace(ls))
	if err != nil {
		return 0, 0, fmt.Errorf("bad range start %q: %w", ls, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return 0, 0, fmt.Errorf("bad range end %q: %w", rs, err)
	}
	return l, r, nil
}
