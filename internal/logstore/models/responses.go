package models

import (
	"time"

	"logvault/internal/usage"
)

// This file contains transport-layer response models for JSON output.

// EntryResult is the wire form of an entry. Level is the numeric rank;
// LevelName carries the tag for readability.
type EntryResult struct {
	Sequence  uint64    `json:"sequence"`
	Namespace string    `json:"namespace"`
	Level     int       `json:"level"`
	LevelName string    `json:"level_name"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryResult(e Entry) EntryResult {
	return EntryResult{
		Sequence:  e.Sequence,
		Namespace: e.Namespace,
		Level:     e.Level.Rank(),
		LevelName: e.Level.String(),
		Message:   e.Message,
		Timestamp: e.Timestamp,
	}
}

func NewEntryResults(entries []Entry) []EntryResult {
	out := make([]EntryResult, len(entries))
	for i, e := range entries {
		out[i] = NewEntryResult(e)
	}
	return out
}

// AddResponse is the response payload for POST /v1/logs.
type AddResponse struct {
	Sequence uint64 `json:"sequence"`
}

type QueryResponse struct {
	Entries []EntryResult `json:"entries"`
}

type ExportResponse struct {
	Exported      []EntryResult `json:"exported"`
	ExportedCount int           `json:"exported_count"`
}

type SizeResponse struct {
	Size int `json:"size"`
}

type ClearResponse struct {
	Removed int `json:"removed"`
}

type BufferSizeResponse struct {
	Size int `json:"size"`
}

// StatsResponse is the response payload for GET /v1/stats: store counters
// plus the usage accountant's view.
type StatsResponse struct {
	Size           int          `json:"size"`
	Capacity       int          `json:"capacity"`
	MaxCapacity    int          `json:"max_capacity"`
	NextSequence   uint64       `json:"next_sequence"`
	TotalAdded     uint64       `json:"total_added"`
	TotalEvicted   uint64       `json:"total_evicted"`
	TotalCleared   uint64       `json:"total_cleared"`
	OldestSequence uint64       `json:"oldest_sequence,omitempty"`
	NewestSequence uint64       `json:"newest_sequence,omitempty"`
	Usage          usage.Status `json:"usage"`
}

func NewStatsResponse(stats Stats, maxCapacity int, status usage.Status) *StatsResponse {
	return &StatsResponse{
		Size:           stats.Size,
		Capacity:       stats.Capacity,
		MaxCapacity:    maxCapacity,
		NextSequence:   stats.NextSequence,
		TotalAdded:     stats.TotalAdded,
		TotalEvicted:   stats.TotalEvicted,
		TotalCleared:   stats.TotalCleared,
		OldestSequence: stats.OldestSequence,
		NewestSequence: stats.NewestSequence,
		Usage:          status,
	}
}
