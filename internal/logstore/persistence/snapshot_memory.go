package persistence

import (
	"context"
	"sync"
	"time"
)

// MemorySnapshotter keeps the encoded image in memory. It survives a
// service restart inside one process, which is what tests need.
type MemorySnapshotter struct {
	mu          sync.Mutex
	data        []byte
	saves       int
	quarantined map[string][]byte
}

func NewMemory() *MemorySnapshotter {
	return &MemorySnapshotter{}
}

func (m *MemorySnapshotter) Save(_ context.Context, img *Image) error {
	data, err := Encode(img)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

func (m *MemorySnapshotter) Load(_ context.Context) (*Image, error) {
	m.mu.Lock()
	data := m.data
	m.mu.Unlock()
	if data == nil {
		return nil, nil
	}
	return Decode(data)
}

// Saves returns how many times Save succeeded.
func (m *MemorySnapshotter) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetRaw replaces the stored bytes verbatim.
func (m *MemorySnapshotter) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// Quarantine moves the stored bytes aside under a timestamped name.
func (m *MemorySnapshotter) Quarantine(_ context.Context, at time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quarantined == nil {
		m.quarantined = make(map[string][]byte)
	}
	name := "memory:" + quarantineSuffix(at)
	m.quarantined[name] = m.data
	m.data = nil
	return name, nil
}

// Quarantined returns the quarantined images keyed by location.
func (m *MemorySnapshotter) Quarantined() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.quarantined))
	for k, v := range m.quarantined {
		out[k] = v
	}
	return out
}

func (m *MemorySnapshotter) Close() error {
	return nil
}
