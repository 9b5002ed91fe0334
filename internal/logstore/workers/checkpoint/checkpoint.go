package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Checkpointer saves the current image.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// Worker saves the image periodically so a crash loses at most one
// interval of entries. The final save on shutdown is the caller's job.
type Worker struct {
	checkpointer Checkpointer
	interval     time.Duration
	logger       *slog.Logger
}

// Option configures Worker.
type Option func(*Worker)

// WithInterval sets the checkpoint interval. Zero or negative disables
// periodic checkpoints.
func WithInterval(interval time.Duration) Option {
	return func(w *Worker) {
		w.interval = interval
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New constructs a Worker with a one minute default interval.
func New(checkpointer Checkpointer, opts ...Option) (*Worker, error) {
	if checkpointer == nil {
		return nil, fmt.Errorf("checkpointer is required")
	}
	w := &Worker{
		checkpointer: checkpointer,
		interval:     time.Minute,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Enabled reports whether Start will checkpoint at all.
func (w *Worker) Enabled() bool {
	return w.interval > 0
}

// Start checkpoints on every tick until ctx is cancelled. A disabled worker
// returns nil immediately. Failed checkpoints are logged and retried on the
// next tick.
func (w *Worker) Start(ctx context.Context) error {
	if !w.Enabled() {
		w.logger.InfoContext(ctx, "periodic checkpoints disabled")
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.ErrorContext(ctx, "periodic checkpoint failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single checkpoint.
func (w *Worker) RunOnce(ctx context.Context) error {
	if err := w.checkpointer.Checkpoint(ctx); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}
