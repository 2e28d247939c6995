// Package history keeps a bounded, chronological price window and the
// aggregation series that summarizes it.
package history

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/rustyeddy/swingtree/series"
	"github.com/rustyeddy/swingtree/tree"
)

type entry struct {
	price float64
	slot  int // leaf index in the series
}

// Window holds at most Cap() prices, oldest first.
//
// While the window grows the series is rebuilt on every push, since a
// series cannot change length. Once full, each push evicts the oldest price
// and writes the new one into the series slot it occupied. Slots are then
// no longer chronological, which is fine because the trend always folds the
// whole window with a commutative combiner.
type Window struct {
	capacity int
	mode     series.Mode
	entries  deque.Deque[entry]
	series   *series.Series
}

// New creates an empty window.
func New(capacity int, mode series.Mode) (*Window, error) {
	if capacity < 1 {
		return nil, &tree.ConfigurationError{Reason: fmt.Sprintf("history capacity must be positive, got %d", capacity)}
	}
	if !mode.Valid() {
		return nil, &tree.InvalidOperationError{Operation: mode.String(), Err: tree.ErrConfiguration}
	}
	return &Window{capacity: capacity, mode: mode}, nil
}

// Len returns the number of prices held.
func (w *Window) Len() int {
	return w.entries.Len()
}

// Cap returns the maximum number of prices held.
func (w *Window) Cap() int {
	return w.capacity
}

// Full reports whether the next push evicts.
func (w *Window) Full() bool {
	return w.entries.Len() == w.capacity
}

// Mode returns the aggregation mode of the trend.
func (w *Window) Mode() series.Mode {
	return w.mode
}

// Push appends the newest price. When the window was full the oldest price
// is evicted and returned with evicted set.
func (w *Window) Push(price float64) (old float64, evicted bool, err error) {
	if err := tree.ValidateData([]float64{price}); err != nil {
		return 0, false, err
	}

	if !w.Full() {
		w.entries.PushBack(entry{price: price, slot: w.entries.Len()})
		s, err := series.NewWithMode(w.bySlot(), w.mode)
		if err != nil {
			w.entries.PopBack()
			return 0, false, err
		}
		w.series = s
		return 0, false, nil
	}

	oldest := w.entries.PopFront()
	w.entries.PushBack(entry{price: price, slot: oldest.slot})
	if err := w.series.UpdateValue(oldest.slot, price); err != nil {
		w.entries.PopBack()
		w.entries.PushFront(oldest)
		return 0, false, err
	}
	return oldest.price, true, nil
}

// bySlot lays the prices out in series leaf order.
func (w *Window) bySlot() []float64 {
	out := make([]float64, w.entries.Len())
	for i := 0; i < w.entries.Len(); i++ {
		e := w.entries.At(i)
		out[e.slot] = e.price
	}
	return out
}

// Trend aggregates the whole window.
func (w *Window) Trend() (float64, error) {
	if w.series == nil {
		return 0, &tree.InvalidOperationError{Operation: "trend"}
	}
	return w.series.RangeQuery(0, w.entries.Len()-1)
}

// Last returns the newest price.
func (w *Window) Last() (float64, bool) {
	if w.entries.Len() == 0 {
		return 0, false
	}
	return w.entries.Back().price, true
}

// Prices returns a copy of the window, oldest first.
func (w *Window) Prices() []float64 {
	out := make([]float64, w.entries.Len())
	for i := range out {
		out[i] = w.entries.At(i).price
	}
	return out
}

// Check validates the series behind the window.
func (w *Window) Check() error {
	if w.series == nil {
		return nil
	}
	if w.series.Len() != w.entries.Len() {
		return fmt.Errorf("%w: series has %d values, window has %d", tree.ErrInvariant, w.series.Len(), w.entries.Len())
	}
	return w.series.Check()
}
