// ABOUTME: Full-collection backup and restore through a Sink.
// ABOUTME: Snapshots are the JSON export format shared with `daylog export json`.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/daylog/internal/storage"
)

// Service writes and restores snapshots of a store.
type Service struct {
	store  *storage.Store
	sink   Sink
	logger *log.Logger
}

// NewService creates a backup service over store and sink.
func NewService(store *storage.Store, sink Sink, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{store: store, sink: sink, logger: logger}
}

// Backup writes a snapshot of every record and returns its name.
func (s *Service) Backup(ctx context.Context) (string, error) {
	snapshot := s.store.GetAllData()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	name := NewName(snapshot.ExportedAt)
	if err := s.sink.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	s.logger.Info("backup written", "name", name, "records", len(snapshot.Records))
	return name, nil
}

// List returns available backups, oldest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.sink.List(ctx)
}

// Latest returns the newest backup name, or "" when there are none.
func (s *Service) Latest(ctx context.Context) (string, error) {
	names, err := s.sink.List(ctx)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[len(names)-1], nil
}

// Restore replaces the store's collection with the named snapshot.
// It returns the number of records restored.
func (s *Service) Restore(ctx context.Context, name string) (int, error) {
	data, err := s.sink.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	snapshot, err := storage.ParseExport(data)
	if err != nil {
		return 0, fmt.Errorf("parse backup %s: %w", name, err)
	}
	s.store.ReplaceAll(snapshot.Records)
	s.logger.Info("backup restored", "name", name, "records", len(snapshot.Records))
	return len(snapshot.Records), nil
}
