package store

import "logvault/internal/logstore/models"

// ring is a FIFO of entries backed by a circular arena. The arena grows on
// demand up to capacity so a large configured capacity costs nothing until
// it is used. Not safe for concurrent use; Store serialises access.
type ring struct {
	buf      []models.Entry
	head     int
	count    int
	capacity int
}

const minArena = 16

func newRing(capacity int) *ring {
	return &ring{capacity: capacity}
}

func (r *ring) len() int {
	return r.count
}

// at returns the i-th oldest entry.
func (r *ring) at(i int) *models.Entry {
	return &r.buf[(r.head+i)%len(r.buf)]
}

// push appends e at the tail. When the ring is full the oldest entry is
// overwritten and push reports the eviction.
func (r *ring) push(e models.Entry) (evicted bool) {
	if r.count == len(r.buf) && len(r.buf) < r.capacity {
		r.relayout(min(max(2*len(r.buf), minArena), r.capacity))
	}
	if r.count < len(r.buf) {
		*r.at(r.count) = e
		r.count++
		return false
	}
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	return true
}

// dropOldest removes n entries from the head.
func (r *ring) dropOldest(n int) {
	for range n {
		*r.at(0) = models.Entry{}
		r.head = (r.head + 1) % len(r.buf)
		r.count--
	}
	if r.count == 0 {
		r.head = 0
	}
}

// resize changes the capacity, evicting the oldest entries when shrinking
// below the current count. Returns the number evicted.
func (r *ring) resize(capacity int) int {
	evicted := max(r.count-capacity, 0)
	if evicted > 0 {
		r.dropOldest(evicted)
	}
	r.capacity = capacity
	if len(r.buf) > capacity {
		r.relayout(capacity)
	}
	return evicted
}

// retain keeps the entries for which keep returns true, preserving order.
// Returns the number removed.
func (r *ring) retain(keep func(*models.Entry) bool) int {
	if r.count == 0 {
		return 0
	}
	r.relayout(len(r.buf))
	kept := 0
	for i := 0; i < r.count; i++ {
		if keep(&r.buf[i]) {
			r.buf[kept] = r.buf[i]
			kept++
		}
	}
	clear(r.buf[kept:r.count])
	removed := r.count - kept
	r.count = kept
	return removed
}

// reset drops every entry and releases the arena.
func (r *ring) reset() int {
	removed := r.count
	r.buf = nil
	r.head = 0
	r.count = 0
	return removed
}

// scan visits entries oldest first until fn returns false.
func (r *ring) scan(fn func(*models.Entry) bool) {
	for i := 0; i < r.count; i++ {
		if !fn(r.at(i)) {
			return
		}
	}
}

// relayout copies the live entries into a fresh arena of size n starting at
// index zero. n must be at least count.
func (r *ring) relayout(n int) {
	next := make([]models.Entry, n)
	for i := 0; i < r.count; i++ {
		next[i] = *r.at(i)
	}
	r.buf = next
	r.head = 0
}
