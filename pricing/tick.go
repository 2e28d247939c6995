// Package pricing defines the price observations the bot consumes and the
// sources that produce them.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDataIntegrity signals a price that could not be fetched or trusted.
var ErrDataIntegrity = errors.New("pricing: data integrity")

// DataIntegrityError wraps a failure to obtain a usable price.
type DataIntegrityError struct {
	Source string
	Pair   string
	Err    error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: failed to fetch price data for %s: %v", e.Source, e.Pair, e.Err)
}

func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

// Source yields the latest price of a trading pair.
type Source interface {
	Latest(ctx context.Context, pair string) (Tick, error)
}

// Tick is a single spot price observation.
type Tick struct {
	Pair  string
	Price float64
	Time  time.Time
}

// TickStore is an in-memory Source holding the last tick per pair.
type TickStore struct {
	mu    sync.RWMutex
	ticks map[string]Tick
}

func NewTickStore() *TickStore {
	return &TickStore{ticks: make(map[string]Tick)}
}

func (ps *TickStore) Set(t Tick) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.ticks[t.Pair] = t
}

func (ps *TickStore) Get(pair string) (Tick, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	t, ok := ps.ticks[pair]
	if !ok {
		return Tick{}, errors.New("price not found")
	}
	return t, nil
}

// Latest implements Source.
func (ps *TickStore) Latest(ctx context.Context, pair string) (Tick, error) {
	if err := ctx.Err(); err != nil {
		return Tick{}, err
	}
	t, err := ps.Get(pair)
	if err != nil {
		return Tick{}, &DataIntegrityError{Source: "store", Pair: pair, Err: err}
	}
	return t, nil
}
