package main

import (
	"context"

	"logvault/internal/logstore/store"
	"logvault/internal/usage"
)

// storeCounters adapts the log store to usage.CounterSource at the
// composition root, keeping the usage module independent of log store types.
type storeCounters struct {
	store *store.Store
}

func (c storeCounters) Counters(ctx context.Context) usage.Counters {
	stats := c.store.Stats(ctx)
	return usage.Counters{
		TotalAdded: stats.TotalAdded,
		Size:       stats.Size,
		Capacity:   stats.Capacity,
	}
}
