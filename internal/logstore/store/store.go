// Package store holds the bounded in-memory log store.
//
// Error Contract:
//   - Return sentinel.ErrInvalidInput (wrapped) for capacities out of range,
//     invalid levels and malformed images
//   - Return nil for every other operation; reads and clears cannot fail
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"logvault/internal/logstore/models"
	"logvault/internal/sentinel"
)

const (
	DefaultCapacity    = 1000
	DefaultMaxCapacity = 1_000_000
)

// Store is a bounded, append-only log with FIFO eviction. Every public method
// holds the mutex for its full duration so each operation is atomic with
// respect to the others.
type Store struct {
	mu      sync.Mutex
	entries *ring

	nextSequence  uint64
	totalAdded    uint64
	totalEvicted  uint64
	totalCleared  uint64
	lastTimestamp time.Time

	maxCapacity int
}

// Option configures a Store.
type Option func(*Store)

// WithMaxCapacity sets the upper bound accepted by SetCapacity. Restore
// lowers larger image capacities to it.
func WithMaxCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxCapacity = n
		}
	}
}

// New constructs an empty store. The first entry receives sequence 1.
func New(capacity int, opts ...Option) (*Store, error) {
	s := &Store{
		nextSequence: 1,
		maxCapacity:  DefaultMaxCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.checkCapacity(capacity); err != nil {
		return nil, err
	}
	s.entries = newRing(capacity)
	return s, nil
}

// Add appends an entry, evicting the oldest entries once capacity is
// exceeded. The timestamp is clamped to the previous entry's so timestamps
// never decrease with sequence.
func (s *Store) Add(_ context.Context, in models.NewEntry) (models.AddResult, error) {
	if !in.Level.IsValid() {
		return models.AddResult{}, fmt.Errorf("add entry: level %d: %w", in.Level, sentinel.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	at := in.At
	if at.Before(s.lastTimestamp) {
		at = s.lastTimestamp
	}
	entry := models.Entry{
		Sequence:  s.nextSequence,
		Namespace: in.Namespace,
		Level:     in.Level,
		Message:   in.Message,
		Timestamp: at,
	}
	s.nextSequence++
	s.totalAdded++
	s.lastTimestamp = at

	result := models.AddResult{Entry: entry}
	if s.entries.push(entry) {
		s.totalEvicted++
		result.Evicted = 1
	}
	return result, nil
}

// Query returns the page of matching entries in ascending sequence order.
// Prev skips that many matches; a nil Take returns all remaining matches.
func (s *Store) Query(_ context.Context, filter models.Filter, page models.Page) ([]models.Entry, error) {
	if page.Prev < 0 || (page.Take != nil && *page.Take < 0) {
		return nil, fmt.Errorf("query: negative page bounds: %w", sentinel.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	limit := -1
	if page.Take != nil {
		limit = *page.Take
	}
	if limit == 0 || page.Prev >= s.entries.len() {
		return []models.Entry{}, nil
	}

	match := filter.Matcher()
	capHint := s.entries.len() - page.Prev
	if limit > 0 && limit < capHint {
		capHint = limit
	}
	out := make([]models.Entry, 0, capHint)
	skip := page.Prev
	s.entries.scan(func(e *models.Entry) bool {
		if !match(e) {
			return true
		}
		if skip > 0 {
			skip--
			return true
		}
		out = append(out, *e)
		return limit < 0 || len(out) < limit
	})
	return out, nil
}

// Export is Query with the page length attached.
func (s *Store) Export(ctx context.Context, filter models.Filter, page models.Page) (models.Export, error) {
	entries, err := s.Query(ctx, filter, page)
	if err != nil {
		return models.Export{}, err
	}
	return models.Export{Exported: entries, ExportedCount: len(entries)}, nil
}

// Size counts matching entries without materialising them.
func (s *Store) Size(_ context.Context, filter models.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(filter.Namespaces) == 0 && filter.MinLevel == nil {
		return s.entries.len(), nil
	}
	match := filter.Matcher()
	count := 0
	s.entries.scan(func(e *models.Entry) bool {
		if match(e) {
			count++
		}
		return true
	})
	return count, nil
}

// Clear removes every entry whose namespace is listed, or every entry when
// namespaces is empty. Survivors keep their relative order.
func (s *Store) Clear(_ context.Context, namespaces []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	if len(namespaces) == 0 {
		removed = s.entries.reset()
	} else {
		match := models.Filter{Namespaces: namespaces}.Matcher()
		removed = s.entries.retain(func(e *models.Entry) bool { return !match(e) })
	}
	s.totalCleared += uint64(removed)
	return removed, nil
}

// SetCapacity changes the capacity. Shrinking evicts the oldest entries
// immediately. An out-of-range value leaves the store untouched.
func (s *Store) SetCapacity(_ context.Context, capacity int) (int, error) {
	if err := s.checkCapacity(capacity); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := s.entries.resize(capacity)
	s.totalEvicted += uint64(evicted)
	return evicted, nil
}

func (s *Store) Capacity(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.capacity
}

// MaxCapacity is the upper bound for SetCapacity.
func (s *Store) MaxCapacity() int {
	return s.maxCapacity
}

func (s *Store) Stats(_ context.Context) models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.Stats{
		Size:         s.entries.len(),
		Capacity:     s.entries.capacity,
		NextSequence: s.nextSequence,
		TotalAdded:   s.totalAdded,
		TotalEvicted: s.totalEvicted,
		TotalCleared: s.totalCleared,
	}
	if n := s.entries.len(); n > 0 {
		stats.OldestSequence = s.entries.at(0).Sequence
		stats.NewestSequence = s.entries.at(n - 1).Sequence
	}
	return stats
}

// Image captures the full state. Entries are copied so the image stays valid
// after further mutation.
func (s *Store) Image(_ context.Context) models.StoreImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.Entry, 0, s.entries.len())
	s.entries.scan(func(e *models.Entry) bool {
		entries = append(entries, *e)
		return true
	})
	return models.StoreImage{
		Capacity:     s.entries.capacity,
		NextSequence: s.nextSequence,
		TotalAdded:   s.totalAdded,
		TotalEvicted: s.totalEvicted,
		TotalCleared: s.totalCleared,
		Entries:      entries,
	}
}

// Restore replaces the state with img. The image is validated first and the
// store is left unchanged when validation fails. A capacity above the
// configured maximum is lowered to it. Images holding more entries than the
// resulting capacity are trimmed oldest first and the trimmed entries count
// as evicted.
func (s *Store) Restore(_ context.Context, img models.StoreImage) error {
	if err := s.validateImage(img); err != nil {
		return err
	}

	capacity := min(img.Capacity, s.maxCapacity)
	entries := newRing(capacity)
	var last time.Time
	for _, e := range img.Entries {
		entries.push(e)
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	trimmed := max(len(img.Entries)-capacity, 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = entries
	s.nextSequence = img.NextSequence
	s.totalAdded = img.TotalAdded
	s.totalEvicted = img.TotalEvicted + uint64(trimmed)
	s.totalCleared = img.TotalCleared
	s.lastTimestamp = last
	return nil
}

// ReserveSequences raises the next sequence to at least next. It never
// lowers it. Used when an image is discarded so sequences it handed out are
// not assigned again.
func (s *Store) ReserveSequences(_ context.Context, next uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSequence = max(s.nextSequence, next)
}

func (s *Store) validateImage(img models.StoreImage) error {
	if img.Capacity < 1 {
		return fmt.Errorf("restore: capacity must be at least 1, got %d: %w", img.Capacity, sentinel.ErrInvalidInput)
	}
	if img.NextSequence == 0 {
		return fmt.Errorf("restore: next sequence must be positive: %w", sentinel.ErrInvalidInput)
	}
	var prev uint64
	for i, e := range img.Entries {
		if e.Sequence == 0 || (i > 0 && e.Sequence <= prev) {
			return fmt.Errorf("restore: entry %d out of order (sequence %d): %w", i, e.Sequence, sentinel.ErrInvalidInput)
		}
		if !e.Level.IsValid() {
			return fmt.Errorf("restore: entry %d has invalid level: %w", i, sentinel.ErrInvalidInput)
		}
		prev = e.Sequence
	}
	if prev >= img.NextSequence {
		return fmt.Errorf("restore: next sequence %d not above retained %d: %w", img.NextSequence, prev, sentinel.ErrInvalidInput)
	}
	return nil
}

func (s *Store) checkCapacity(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d: %w", capacity, sentinel.ErrInvalidInput)
	}
	if capacity > s.maxCapacity {
		return fmt.Errorf("capacity must be at most %d, got %d: %w", s.maxCapacity, capacity, sentinel.ErrInvalidInput)
	}
	return nil
}
