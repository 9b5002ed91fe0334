package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logvault/internal/logstore/models"
)

func ringSequences(r *ring) []uint64 {
	var out []uint64
	r.scan(func(e *models.Entry) bool {
		out = append(out, e.Sequence)
		return true
	})
	return out
}

func TestRingGrowsLazily(t *testing.T) {
	r := newRing(1_000_000)
	assert.Empty(t, r.buf)

	r.push(models.Entry{Sequence: 1})
	assert.Len(t, r.buf, minArena)

	for i := uint64(2); i <= minArena+1; i++ {
		assert.False(t, r.push(models.Entry{Sequence: i}))
	}
	assert.Len(t, r.buf, 2*minArena)
	assert.Equal(t, minArena+1, r.len())
}

func TestRingOverwritesOldestWhenFull(t *testing.T) {
	r := newRing(3)
	for i := uint64(1); i <= 3; i++ {
		assert.False(t, r.push(models.Entry{Sequence: i}))
	}
	assert.True(t, r.push(models.Entry{Sequence: 4}))
	assert.True(t, r.push(models.Entry{Sequence: 5}))
	assert.Equal(t, []uint64{3, 4, 5}, ringSequences(r))
	assert.Len(t, r.buf, 3)
}

func TestRingResizeAcrossWrap(t *testing.T) {
	r := newRing(4)
	for i := uint64(1); i <= 6; i++ {
		r.push(models.Entry{Sequence: i})
	}
	assert.Equal(t, 2, r.resize(2))
	assert.Equal(t, []uint64{5, 6}, ringSequences(r))

	r.resize(5)
	for i := uint64(7); i <= 9; i++ {
		assert.False(t, r.push(models.Entry{Sequence: i}))
	}
	assert.Equal(t, []uint64{5, 6, 7, 8, 9}, ringSequences(r))
}

func TestRingScanStopsEarly(t *testing.T) {
	r := newRing(10)
	for i := uint64(1); i <= 5; i++ {
		r.push(models.Entry{Sequence: i})
	}
	visited := 0
	r.scan(func(*models.Entry) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestRingReset(t *testing.T) {
	r := newRing(2)
	r.push(models.Entry{Sequence: 1})
	assert.Equal(t, 1, r.reset())
	assert.Zero(t, r.len())
	r.push(models.Entry{Sequence: 2})
	assert.Equal(t, []uint64{2}, ringSequences(r))
}
