// Package usage samples store activity once per wall-clock period.
//
// The accountant is polled with the current time. The first successful poll
// anchors it; every later poll that lands in a newer period closes each
// period in between and records one snapshot per closed period, oldest first.
// Activity since the previous sample is attributed to the oldest of the newly
// closed periods because the accountant cannot know when inside the gap the
// entries arrived.
package usage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"logvault/internal/platform/tracer"
	"logvault/internal/sentinel"
)

const DefaultPeriod = 24 * time.Hour

// Accountant is safe for concurrent use. Polls are serialised; readers only
// contend with the state update inside a poll, not with reporting.
type Accountant struct {
	source   CounterSource
	clock    Clock
	period   time.Duration
	reporter Reporter
	logger   *slog.Logger
	metrics  *Metrics
	tracer   tracer.Tracer

	pollMu sync.Mutex
	mu     sync.RWMutex
	state  State
}

// Option configures an Accountant.
type Option func(*Accountant)

// WithPeriod sets the period length when greater than zero.
func WithPeriod(d time.Duration) Option {
	return func(a *Accountant) {
		if d > 0 {
			a.period = d
		}
	}
}

func WithReporter(r Reporter) Option {
	return func(a *Accountant) {
		a.reporter = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Accountant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(a *Accountant) {
		a.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(a *Accountant) {
		if t != nil {
			a.tracer = t
		}
	}
}

// New constructs an accountant in the unanchored Idle state.
func New(source CounterSource, clock Clock, opts ...Option) (*Accountant, error) {
	if source == nil || clock == nil {
		return nil, fmt.Errorf("counter source and clock are required")
	}
	a := &Accountant{
		source: source,
		clock:  clock,
		period: DefaultPeriod,
		logger: slog.Default(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

// Period returns the configured period length.
func (a *Accountant) Period() time.Duration {
	return a.period
}

// PeriodOf returns the index of the period containing t, counted from the
// Unix epoch.
func (a *Accountant) PeriodOf(t time.Time) int64 {
	return floorDiv(t.UnixNano(), int64(a.period))
}

func (a *Accountant) periodStart(p int64) time.Time {
	return time.Unix(0, p*int64(a.period)).UTC()
}

// Poll samples the counters. It returns the snapshots recorded by this poll,
// which is empty when anchoring, when the period has not changed, when the
// clock moved backwards, or when the clock is unavailable. Poll never fails;
// report errors are logged and counted.
func (a *Accountant) Poll(ctx context.Context) []Snapshot {
	a.pollMu.Lock()
	defer a.pollMu.Unlock()

	ctx, span := a.tracer.Start(ctx, tracer.SpanUsagePoll)
	var recorded []Snapshot
	defer func() {
		span.SetAttributes(tracer.Int(tracer.AttrSnapshots, len(recorded)))
		span.End(nil)
	}()

	now, err := a.clock.Now()
	if err != nil {
		a.metrics.incDeferred()
		a.logger.DebugContext(ctx, "usage_poll_deferred", "error", err)
		return nil
	}
	current := a.PeriodOf(now)
	counters := a.source.Counters(ctx)

	a.mu.Lock()
	switch {
	case !a.state.Anchored:
		a.state.Anchored = true
		a.state.LastPeriod = current
		a.state.LastTotal = counters.TotalAdded
		a.mu.Unlock()
		a.logger.InfoContext(ctx, "usage_anchored", "period", current)
		return nil
	case current <= a.state.LastPeriod:
		a.mu.Unlock()
		return nil
	}

	added := uint64(0)
	if counters.TotalAdded > a.state.LastTotal {
		added = counters.TotalAdded - a.state.LastTotal
	}
	recorded = make([]Snapshot, 0, current-a.state.LastPeriod)
	for p := a.state.LastPeriod; p < current; p++ {
		snap := Snapshot{
			Period:      p,
			PeriodStart: a.periodStart(p),
			PeriodEnd:   a.periodStart(p + 1),
			RecordedAt:  now,
			TotalAdded:  counters.TotalAdded,
			StoreSize:   counters.Size,
			Capacity:    counters.Capacity,
		}
		if p == a.state.LastPeriod {
			snap.Added = added
		}
		recorded = append(recorded, snap)
	}
	a.state.History = append(a.state.History, recorded...)
	a.state.LastPeriod = current
	a.state.LastTotal = counters.TotalAdded
	a.mu.Unlock()

	a.metrics.observeSnapshots(len(recorded), current)
	a.logger.InfoContext(ctx, "usage_snapshot_recorded",
		"snapshots", len(recorded),
		"first_period", recorded[0].Period,
		"current_period", current,
		"added", added,
	)
	a.report(ctx, recorded)
	return recorded
}

func (a *Accountant) report(ctx context.Context, snaps []Snapshot) {
	if a.reporter == nil {
		return
	}
	for _, snap := range snaps {
		if err := a.reporter.Report(ctx, snap); err != nil {
			a.metrics.incReportFailure()
			a.logger.WarnContext(ctx, "usage_report_failed",
				"period", snap.Period,
				"error", err,
			)
		}
	}
}

// History returns a copy of every snapshot recorded so far, oldest first.
func (a *Accountant) History() []Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Snapshot(nil), a.state.History...)
}

// Status reports the phase relative to the clock's current period. The phase
// is sampled only once a boundary crossing into the current period recorded a
// snapshot; anchoring alone leaves it idle. When the clock is unavailable the
// phase is computed against the last sampled period.
func (a *Accountant) Status() Status {
	a.mu.RLock()
	state := a.state
	history := append([]Snapshot(nil), a.state.History...)
	a.mu.RUnlock()

	current := state.LastPeriod
	if now, err := a.clock.Now(); err == nil {
		current = a.PeriodOf(now)
	}
	phase := PhaseIdle
	if state.Anchored && current <= state.LastPeriod &&
		len(history) > 0 && history[len(history)-1].Period == state.LastPeriod-1 {
		phase = PhaseSampled
	}
	if history == nil {
		history = []Snapshot{}
	}
	return Status{
		Phase:         phase,
		Period:        a.period.String(),
		CurrentPeriod: current,
		LastPeriod:    state.LastPeriod,
		Anchored:      state.Anchored,
		History:       history,
	}
}

// State returns a copy of the durable state.
func (a *Accountant) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	state := a.state
	state.History = append([]Snapshot(nil), a.state.History...)
	return state
}

// Restore replaces the durable state. History must be in ascending period
// order and must not extend past LastPeriod.
func (a *Accountant) Restore(state State) error {
	for i, snap := range state.History {
		if i > 0 && snap.Period <= state.History[i-1].Period {
			return fmt.Errorf("usage history out of order at %d: %w", i, sentinel.ErrInvalidInput)
		}
		if snap.Period >= state.LastPeriod {
			return fmt.Errorf("usage snapshot %d is not before last period %d: %w", snap.Period, state.LastPeriod, sentinel.ErrInvalidInput)
		}
	}
	if !state.Anchored && len(state.History) > 0 {
		return fmt.Errorf("usage history present without anchor: %w", sentinel.ErrInvalidInput)
	}

	a.pollMu.Lock()
	defer a.pollMu.Unlock()
	a.mu.Lock()
	defer a.mu.Unlock()
	state.History = append([]Snapshot(nil), state.History...)
	a.state = state
	return nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
