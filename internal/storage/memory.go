// ABOUTME: In-memory Backend for tests and dry runs.
// ABOUTME: Copies slices on the way in and out so callers cannot alias stored state.
package storage

import (
	"sync"

	"github.com/harperreed/daylog/internal/models"
)

// MemoryBackend keeps the collection in process memory.
type MemoryBackend struct {
	mu       sync.Mutex
	records  []models.Record
	settings map[string]string
	closed   bool
}

// Compile-time check that MemoryBackend implements Backend.
var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates a backend seeded with records.
func NewMemoryBackend(records ...models.Record) *MemoryBackend {
	return &MemoryBackend{
		records:  append([]models.Record(nil), records...),
		settings: make(map[string]string),
	}
}

// Load returns a copy of the stored records.
func (m *MemoryBackend) Load() ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	return append([]models.Record{}, m.records...), nil
}

// Save replaces the stored records with a copy of records.
func (m *MemoryBackend) Save(records []models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.records = append([]models.Record{}, records...)
	return nil
}

// GetSetting returns the value stored under key.
func (m *MemoryBackend) GetSetting(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.settings[key]
	return v, ok, nil
}

// SetSetting stores value under key.
func (m *MemoryBackend) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.settings[key] = value
	return nil
}

// Close marks the backend closed; later calls fail with ErrClosed.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
