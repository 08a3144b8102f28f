// ABOUTME: Filesystem backup sink.
// ABOUTME: Writes snapshots atomically into a single directory.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FSSink keeps backups as files in a directory.
type FSSink struct {
	dir string
}

// NewFSSink returns a sink rooted at dir, creating it if needed.
func NewFSSink(dir string) (*FSSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("backup directory required")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	return &FSSink{dir: dir}, nil
}

// Dir returns the backup directory.
func (s *FSSink) Dir() string {
	return s.dir
}

// Put writes data under name. Existing backups are never overwritten.
func (s *FSSink) Put(_ context.Context, name string, data []byte) error {
	if !IsBackupName(name) {
		return fmt.Errorf("invalid backup name %q", name)
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", name, ErrExists)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("set backup permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move backup into place: %w", err)
	}
	return nil
}

// Get reads the backup stored under name.
func (s *FSSink) Get(_ context.Context, name string) ([]byte, error) {
	if !IsBackupName(name) {
		return nil, fmt.Errorf("invalid backup name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return data, nil
}

// List returns the backups in the directory, oldest first.
func (s *FSSink) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if !e.IsDir() && IsBackupName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
