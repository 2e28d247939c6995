// Package strategy turns a price and its trend into a trading signal.
package strategy

import "fmt"

type Signal int

const (
	Hold Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Thresholds are trend multipliers. A price below trend*Buy is a buying
// opportunity, a price above trend*Sell a selling one.
type Thresholds struct {
	Buy  float64 `json:"buy_threshold" yaml:"buy_threshold"`
	Sell float64 `json:"sell_threshold" yaml:"sell_threshold"`
}

// DefaultThresholds returns the 5% band around the trend.
func DefaultThresholds() Thresholds {
	return Thresholds{Buy: 0.95, Sell: 1.05}
}

// Validate requires 0 < Buy <= 1 <= Sell.
func (th Thresholds) Validate() error {
	if th.Buy <= 0 || th.Buy > 1 {
		return fmt.Errorf("buy_threshold must be in (0, 1], got %v", th.Buy)
	}
	if th.Sell < 1 {
		return fmt.Errorf("sell_threshold must be >= 1, got %v", th.Sell)
	}
	return nil
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Signal Signal
	Price  float64
	Trend  float64
	Reason string
}

// Decide compares price against the trend band.
func Decide(price, trend float64, th Thresholds) Decision {
	d := Decision{Signal: Hold, Price: price, Trend: trend}
	switch {
	case price < trend*th.Buy:
		d.Signal = Buy
		d.Reason = fmt.Sprintf("price %.2f below %.0f%% of trend %.2f", price, th.Buy*100, trend)
	case price > trend*th.Sell:
		d.Signal = Sell
		d.Reason = fmt.Sprintf("price %.2f above %.0f%% of trend %.2f", price, th.Sell*100, trend)
	default:
		d.Reason = "within band"
	}
	return d
}
