// Package series wraps an aggregation tree behind a closed set of named
// modes, so callers pick "minimum", "maximum" or "sum" instead of
// supplying a combine function and its identity.
package series

import (
	"fmt"

	"github.com/rustyeddy/swingtree/tree"
)

// Series tracks one statistic over a fixed-length sequence of values.
type Series struct {
	mode Mode
	tree *tree.Tree[float64]
}

// New builds a series over data for the named mode.
func New(data []float64, mode string) (*Series, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return NewWithMode(data, m)
}

// NewWithMode builds a series over data for m.
func NewWithMode(data []float64, m Mode) (*Series, error) {
	c, err := m.combiner()
	if err != nil {
		return nil, err
	}
	t, err := tree.New(data, c)
	if err != nil {
		return nil, err
	}
	return &Series{mode: m, tree: t}, nil
}

// Mode returns the statistic the series tracks.
func (s *Series) Mode() Mode {
	return s.mode
}

// Len returns the fixed number of values.
func (s *Series) Len() int {
	return s.tree.Len()
}

// UpdateValue replaces the value at index.
func (s *Series) UpdateValue(index int, value float64) error {
	return s.tree.Update(index, value)
}

// RangeQuery aggregates the values in the inclusive range [left, right].
func (s *Series) RangeQuery(left, right int) (float64, error) {
	return s.tree.Query(left, right)
}

// Total aggregates every value.
func (s *Series) Total() float64 {
	return s.tree.Total()
}

// Snapshot returns a copy of the current values in index order. Internal
// nodes are not exposed.
func (s *Series) Snapshot() []float64 {
	return s.tree.Snapshot()
}

// Check validates the underlying tree.
func (s *Series) Check() error {
	return s.tree.Check()
}

func (s *Series) String() string {
	return fmt.Sprintf("Series(mode=%s, size=%d)", s.mode, s.tree.Len())
}
