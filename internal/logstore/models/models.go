package models

import "time"

// Entry is a single immutable log record.
type Entry struct {
	Sequence  uint64    `json:"sequence"`
	Namespace string    `json:"namespace"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry is the caller-supplied part of an entry; the store assigns the
// sequence and may move At forward to keep timestamps non-decreasing.
type NewEntry struct {
	Namespace string
	Level     Level
	Message   string
	At        time.Time
}

// AddResult reports the stored entry and how many old entries were evicted
// to make room for it.
type AddResult struct {
	Entry   Entry
	Evicted int
}

// Export is the result of an export: the page and its length.
type Export struct {
	Exported      []Entry
	ExportedCount int
}

// Stats is a point-in-time copy of the store counters.
type Stats struct {
	Size         int
	Capacity     int
	NextSequence uint64
	TotalAdded   uint64
	TotalEvicted uint64
	TotalCleared uint64
	// OldestSequence and NewestSequence are zero when the store is empty.
	OldestSequence uint64
	NewestSequence uint64
}

// StoreImage is the durable form of the store: everything needed to resume
// exactly where a stopped process left off.
type StoreImage struct {
	Capacity     int     `json:"capacity"`
	NextSequence uint64  `json:"next_sequence"`
	TotalAdded   uint64  `json:"total_added"`
	TotalEvicted uint64  `json:"total_evicted"`
	TotalCleared uint64  `json:"total_cleared"`
	Entries      []Entry `json:"entries"`
}

// SequenceFloor is the lowest sequence a store resuming from img may assign
// next, even when img itself cannot be applied.
func (img StoreImage) SequenceFloor() uint64 {
	floor := max(img.NextSequence, 1)
	for _, e := range img.Entries {
		if e.Sequence >= floor {
			floor = e.Sequence + 1
		}
	}
	return floor
}
