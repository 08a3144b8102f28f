// ABOUTME: Record Store with whole-collection read-modify-write semantics.
// ABOUTME: Assigns ids and timestamps, logs persistence failures instead of returning them.
package storage

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/daylog/internal/models"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: backend closed")

// Store is the single owner of the persisted record collection.
// Every mutation reads the full collection, changes it and writes it back
// while holding the store mutex.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	logger   *log.Logger
	now      func() time.Time
	onCreate []func(models.Record)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for new timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore wraps backend in a Store.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the underlying persistence backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// OnCreate registers fn to run after every Create.
func (s *Store) OnCreate(fn func(models.Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCreate = append(s.onCreate, fn)
}

// ListAll returns every record. A read failure is logged and yields an empty slice.
func (s *Store) ListAll() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, _ := s.read()
	return records
}

// GetByID returns the record with id, if any.
func (s *Store) GetByID(id int64) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, _ := s.read()
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return models.Record{}, false
}

// Create appends a new record built from d, with id one past the current
// maximum and the current time as timestamp.
func (s *Store) Create(d models.Draft) models.Record {
	s.mu.Lock()
	records, ok := s.read()
	r := models.Record{
		ID:        MaxID(records) + 1,
		Timestamp: s.now().UnixMilli(),
		Date:      d.Date,
		Type:      d.Type,
		Value:     d.Value,
		Unit:      d.Unit,
	}
	if ok {
		s.write(append(records, r))
	} else {
		s.logger.Warn("record not saved, collection unreadable", "id", r.ID, "type", r.Type)
	}
	hooks := append([]func(models.Record){}, s.onCreate...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(r)
	}
	return r
}

// Update merges p over the record with id. It reports false when no such
// record exists. ID and Timestamp are always preserved.
func (s *Store) Update(id int64, p models.Patch) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.read()
	if !ok {
		return models.Record{}, false
	}
	for i, r := range records {
		if r.ID != id {
			continue
		}
		updated := p.Apply(r)
		updated.ID = r.ID
		updated.Timestamp = r.Timestamp
		records[i] = updated
		s.write(records)
		return updated, true
	}
	s.logger.Debug("update skipped, unknown id", "id", id)
	return models.Record{}, false
}

// Delete removes the record with id. It reports false when no such record exists.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.read()
	if !ok {
		return false
	}
	for i, r := range records {
		if r.ID != id {
			continue
		}
		s.write(append(records[:i], records[i+1:]...))
		return true
	}
	s.logger.Debug("delete skipped, unknown id", "id", id)
	return false
}

// Import appends a batch of records in one write and returns how many were added.
// Records whose id collides with a stored or earlier batch id are given the
// next free id above the running maximum. Timestamps are kept.
// An empty batch never touches persistence.
func (s *Store) Import(batch []models.Record) int {
	if len(batch) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.read()
	if !ok {
		s.logger.Warn("import dropped, collection unreadable", "records", len(batch))
		return 0
	}

	seen := make(map[int64]bool, len(records)+len(batch))
	for _, r := range records {
		seen[r.ID] = true
	}
	maxID := MaxID(records)
	for _, r := range batch {
		if r.ID <= 0 || seen[r.ID] {
			r.ID = maxID + 1
		}
		if r.ID > maxID {
			maxID = r.ID
		}
		seen[r.ID] = true
		records = append(records, r)
	}
	s.write(records)
	return len(batch)
}

// ReplaceAll overwrites the collection with records.
func (s *Store) ReplaceAll(records []models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(append([]models.Record{}, records...))
}

// GetSetting reads a scalar setting. Failures are logged and read as absent.
func (s *Store) GetSetting(key string) (string, bool) {
	v, ok, err := s.backend.GetSetting(key)
	if err != nil {
		s.logger.Error("failed to read setting", "key", key, "err", err)
		return "", false
	}
	return v, ok
}

// SetSetting writes a scalar setting. Failures are logged.
func (s *Store) SetSetting(key, value string) {
	if err := s.backend.SetSetting(key, value); err != nil {
		s.logger.Error("failed to write setting", "key", key, "err", err)
	}
}

// MaxID returns the largest id in records, or 0 when there are none.
func MaxID(records []models.Record) int64 {
	var maxID int64
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID
}

func (s *Store) read() ([]models.Record, bool) {
	records, err := s.backend.Load()
	if err != nil {
		s.logger.Error("failed to read records", "err", err)
		return []models.Record{}, false
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, true
}

func (s *Store) write(records []models.Record) {
	if err := s.backend.Save(records); err != nil {
		s.logger.Error("failed to write records", "records", len(records), "err", err)
	}
}
