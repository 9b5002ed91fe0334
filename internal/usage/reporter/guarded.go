package reporter

import (
	"context"
	"errors"
	"log/slog"

	"logvault/internal/usage"
	"logvault/pkg/platform/circuit"
)

// ErrCircuitOpen is returned while the downstream reporter is being skipped.
var ErrCircuitOpen = errors.New("usage reporter circuit open")

// Guarded stops calling a failing reporter until its breaker lets a probe
// through, so a dead broker does not stall every poll on delivery timeouts.
type Guarded struct {
	next    usage.Reporter
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(next usage.Reporter, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Report(ctx context.Context, snap usage.Snapshot) error {
	if !g.breaker.Allow() {
		return ErrCircuitOpen
	}

	if err := g.next.Report(ctx, snap); err != nil {
		if change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "usage reporter circuit opened",
				"breaker", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}

	if change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "usage reporter circuit closed", "breaker", g.breaker.Name())
	}
	return nil
}

var _ usage.Reporter = (*Guarded)(nil)
