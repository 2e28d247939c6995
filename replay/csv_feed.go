// Package replay feeds recorded prices to the bot instead of a live
// exchange.
package replay

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/swingtree/pricing"
)

// CSVFeed replays ticks from a CSV file.
//
// Expected columns:
// time,pair,price
// A header row is allowed. Rows for other pairs are skipped.
type CSVFeed struct {
	f *os.File
	r *csv.Reader

	sawFirst bool
	line     int
}

// NewCSVFeed opens path for replay.
func NewCSVFeed(path string) (*CSVFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return &CSVFeed{f: f, r: r}, nil
}

func (f *CSVFeed) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

// Latest returns the next recorded tick for pair, or io.EOF once the file
// is exhausted.
func (f *CSVFeed) Latest(ctx context.Context, pair string) (pricing.Tick, error) {
	for {
		if err := ctx.Err(); err != nil {
			return pricing.Tick{}, err
		}
		row, err := f.r.Read()
		if err == io.EOF {
			return pricing.Tick{}, io.EOF
		}
		if err != nil {
			return pricing.Tick{}, err
		}
		f.line++
		if len(row) == 0 {
			continue
		}

		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		tick, err := parseRow(row)
		if err != nil {
			return pricing.Tick{}, &pricing.DataIntegrityError{
				Source: "replay",
				Pair:   pair,
				Err:    fmt.Errorf("line %d: %w", f.line, err),
			}
		}
		if pair != "" && !strings.EqualFold(tick.Pair, pair) {
			continue
		}
		return tick, nil
	}
}

func parseRow(row []string) (pricing.Tick, error) {
	if len(row) < 3 {
		return pricing.Tick{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return pricing.Tick{}, fmt.Errorf("parse time: %w", err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return pricing.Tick{}, fmt.Errorf("parse price: %w", err)
	}
	if price <= 0 {
		return pricing.Tick{}, fmt.Errorf("non-positive price %v", price)
	}
	return pricing.Tick{
		Pair:  strings.TrimSpace(row[1]),
		Price: price,
		Time:  ts.UTC(),
	}, nil
}
