// Package bot polls a price source, maintains the rolling trend and reports
// buy and sell opportunities. It never places orders.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rustyeddy/swingtree/history"
	"github.com/rustyeddy/swingtree/journal"
	"github.com/rustyeddy/swingtree/pkg/id"
	"github.com/rustyeddy/swingtree/pricing"
	"github.com/rustyeddy/swingtree/series"
	"github.com/rustyeddy/swingtree/strategy"
	"github.com/rustyeddy/swingtree/tree"
)

const (
	DefaultHistoryLength = 100
	DefaultInterval      = 60 * time.Second
)

type Config struct {
	Pair          string
	Mode          series.Mode
	HistoryLength int
	Interval      time.Duration
	Thresholds    strategy.Thresholds
	MaxSteps      int // 0 means unlimited
}

func (c *Config) setDefaults() {
	if c.HistoryLength == 0 {
		c.HistoryLength = DefaultHistoryLength
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Thresholds == (strategy.Thresholds{}) {
		c.Thresholds = strategy.DefaultThresholds()
	}
}

type Bot struct {
	cfg     Config
	src     pricing.Source
	journal journal.Journal
	log     *slog.Logger

	mu     sync.Mutex
	window *history.Window
}

// New validates cfg, filling zero fields with defaults. A nil journal
// discards records and a nil logger uses slog.Default.
func New(cfg Config, src pricing.Source, j journal.Journal, log *slog.Logger) (*Bot, error) {
	if src == nil {
		return nil, errors.New("bot: price source is required")
	}
	if cfg.Pair == "" {
		return nil, errors.New("bot: pair is required")
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("bot: interval must be positive, got %v", cfg.Interval)
	}
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("bot: max steps must not be negative, got %d", cfg.MaxSteps)
	}
	cfg.setDefaults()
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("bot: %w", err)
	}

	w, err := history.New(cfg.HistoryLength, cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("bot: %w", err)
	}

	if j == nil {
		j = journal.Discard
	}
	if log == nil {
		log = slog.Default()
	}

	return &Bot{
		cfg:     cfg,
		src:     src,
		journal: j,
		log:     log.With("pair", cfg.Pair, "mode", cfg.Mode.String()),
		window:  w,
	}, nil
}

// Config returns the effective configuration.
func (b *Bot) Config() Config {
	return b.cfg
}

// Step fetches one price, folds it into the window and evaluates it.
func (b *Bot) Step(ctx context.Context) (strategy.Decision, error) {
	tick, err := b.src.Latest(ctx, b.cfg.Pair)
	if err != nil {
		return strategy.Decision{}, fmt.Errorf("fetch %s: %w", b.cfg.Pair, err)
	}
	if tick.Time.IsZero() {
		tick.Time = time.Now().UTC()
	}

	b.mu.Lock()
	_, _, err = b.window.Push(tick.Price)
	var trend float64
	if err == nil {
		trend, err = b.window.Trend()
	}
	b.mu.Unlock()
	if err != nil {
		return strategy.Decision{}, fmt.Errorf("apply price %v: %w", tick.Price, err)
	}

	d := strategy.Decide(tick.Price, trend, b.cfg.Thresholds)

	err = b.journal.RecordObservation(journal.Observation{
		ID:    id.NewAt(tick.Time),
		Time:  tick.Time,
		Pair:  b.cfg.Pair,
		Price: tick.Price,
		Trend: trend,
		Mode:  b.cfg.Mode.String(),
	})
	if err != nil {
		return d, fmt.Errorf("record observation: %w", err)
	}

	if d.Signal == strategy.Hold {
		b.log.Debug("price", "price", tick.Price, "trend", trend, "action", d.Signal.String())
		return d, nil
	}

	b.log.Info("opportunity", "price", tick.Price, "trend", trend, "action", d.Signal.String(), "reason", d.Reason)
	err = b.journal.RecordSignal(journal.Signal{
		ID:     id.NewAt(tick.Time),
		Time:   tick.Time,
		Pair:   b.cfg.Pair,
		Action: d.Signal.String(),
		Price:  tick.Price,
		Trend:  trend,
		Reason: d.Reason,
	})
	if err != nil {
		return d, fmt.Errorf("record signal: %w", err)
	}
	return d, nil
}

// Snapshot returns the current trend.
func (b *Bot) Snapshot() (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.window.Len() == 0 {
		return 0, &tree.InvalidOperationError{Operation: "snapshot"}
	}
	return b.window.Trend()
}

// Prices returns the prices currently in the window, oldest first.
func (b *Bot) Prices() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.window.Prices()
}

// Run steps once immediately and then every Interval until ctx is done, the
// source reports io.EOF or MaxSteps steps have run. Step failures are logged
// and do not stop the loop.
func (b *Bot) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	b.log.Info("bot started", "history", b.cfg.HistoryLength, "interval", b.cfg.Interval)

	steps := 0
	for {
		if ctx.Err() != nil {
			b.log.Info("bot stopped", "steps", steps)
			return nil
		}

		_, err := b.Step(ctx)
		steps++
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			b.log.Info("source exhausted", "steps", steps-1)
			return nil
		case ctx.Err() != nil:
			b.log.Info("bot stopped", "steps", steps-1)
			return nil
		default:
			b.log.Warn("step failed", "err", err)
		}

		if b.cfg.MaxSteps > 0 && steps >= b.cfg.MaxSteps {
			b.log.Info("step limit reached", "steps", steps)
			return nil
		}

		select {
		case <-ctx.Done():
			b.log.Info("bot stopped", "steps", steps)
			return nil
		case <-ticker.C:
		}
	}
}
