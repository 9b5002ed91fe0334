package usage

import (
	"context"
	"time"
)

// Snapshot is one closed accounting period. Snapshots are appended to the
// history and never mutated.
type Snapshot struct {
	Period      int64     `json:"period"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	RecordedAt  time.Time `json:"recorded_at"`
	TotalAdded  uint64    `json:"total_added"`
	StoreSize   int       `json:"store_size"`
	Capacity    int       `json:"capacity"`
	// Added is the number of entries appended since the previous snapshot.
	Added uint64 `json:"added"`
}

// State is the durable part of the accountant, stored in the image.
type State struct {
	Anchored   bool       `json:"anchored"`
	LastPeriod int64      `json:"last_period"`
	LastTotal  uint64     `json:"last_total"`
	History    []Snapshot `json:"history"`
}

// Phase reports whether the current period has been sampled yet.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseSampled Phase = "sampled"
)

// Counters are the aggregate store figures the accountant samples.
type Counters struct {
	TotalAdded uint64
	Size       int
	Capacity   int
}

// CounterSource supplies the current counters.
type CounterSource interface {
	Counters(ctx context.Context) Counters
}

// CounterFunc adapts a function to CounterSource.
type CounterFunc func(ctx context.Context) Counters

func (f CounterFunc) Counters(ctx context.Context) Counters {
	return f(ctx)
}

// Reporter receives each new snapshot, oldest first.
type Reporter interface {
	Report(ctx context.Context, snap Snapshot) error
}

// Status is a read-only view for the stats endpoint.
type Status struct {
	Phase         Phase      `json:"phase"`
	Period        string     `json:"period"`
	CurrentPeriod int64      `json:"current_period"`
	LastPeriod    int64      `json:"last_period"`
	Anchored      bool       `json:"anchored"`
	History       []Snapshot `json:"history"`
}
