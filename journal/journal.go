// Package journal records what the bot saw and what it would have done.
package journal

import "time"

// Observation is one polled price and the trend after applying it.
type Observation struct {
	ID    string
	Time  time.Time
	Pair  string
	Price float64
	Trend float64
	Mode  string
}

// Signal is a non-hold trading decision.
type Signal struct {
	ID     string
	Time   time.Time
	Pair   string
	Action string
	Price  float64
	Trend  float64
	Reason string
}

type Journal interface {
	RecordObservation(Observation) error
	RecordSignal(Signal) error
	Close() error
}

// Discard is a Journal that drops every record.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordObservation(Observation) error { return nil }
func (discard) RecordSignal(Signal) error           { return nil }
func (discard) Close() error                        { return nil }
