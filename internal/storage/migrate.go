// ABOUTME: Data migration between daylog storage backends.
// ABOUTME: Copies the record collection and known settings from source to destination.

package storage

import (
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Records  int
	Settings int
}

// MigrateData copies all data from src to dst. The destination collection is
// overwritten, so callers should check it is empty first.
func MigrateData(src, dst Backend) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	records, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load source records: %w", err)
	}
	if err := dst.Save(records); err != nil {
		return nil, fmt.Errorf("save records: %w", err)
	}
	summary.Records = len(records)

	for _, key := range KnownSettings {
		value, ok, err := src.GetSetting(key)
		if err != nil {
			return nil, fmt.Errorf("get source setting %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dst.SetSetting(key, value); err != nil {
			return nil, fmt.Errorf("set setting %s: %w", key, err)
		}
		summary.Settings++
	}

	return summary, nil
}

// IsEmpty reports whether b holds no records.
func IsEmpty(b Backend) (bool, error) {
	records, err := b.Load()
	if err != nil {
		return false, fmt.Errorf("load records: %w", err)
	}
	return len(records) == 0, nil
}
