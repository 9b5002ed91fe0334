package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logvault/internal/usage"
)

// Poller is satisfied by the usage accountant.
type Poller interface {
	Poll(ctx context.Context) []usage.Snapshot
}

// Worker polls the accountant on a fixed interval so periods close even when
// nobody reads stats.
type Worker struct {
	poller   Poller
	interval time.Duration
	logger   *slog.Logger
}

type Option func(*Worker)

// WithInterval overrides the poll interval when greater than zero.
func WithInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func New(poller Poller, opts ...Option) (*Worker, error) {
	if poller == nil {
		return nil, fmt.Errorf("poller is required")
	}
	w := &Worker{
		poller:   poller,
		interval: time.Minute,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Start polls once immediately, then on every tick until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single poll and returns the snapshots it recorded.
func (w *Worker) RunOnce(ctx context.Context) []usage.Snapshot {
	start := time.Now()
	snaps := w.poller.Poll(ctx)
	if len(snaps) > 0 {
		w.logger.DebugContext(ctx, "usage_poll_completed",
			"snapshots", len(snaps),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return snaps
}
