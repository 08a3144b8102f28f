// ABOUTME: Backend implementation over Charm KV.
// ABOUTME: Keeps the record collection as a single JSON value plus prefixed settings.
package charm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/daylog/internal/models"
	"github.com/harperreed/daylog/internal/storage"
)

// Compile-time check that Client implements storage.Backend.
var _ storage.Backend = (*Client)(nil)

// Load returns the stored record collection. A missing key is an empty collection.
func (c *Client) Load() ([]models.Record, error) {
	data, ok, err := c.get(RecordsKey)
	if err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}
	if !ok || len(data) == 0 {
		return []models.Record{}, nil
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return records, nil
}

// Save overwrites the record collection.
func (c *Client) Save(records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := c.set(RecordsKey, data); err != nil {
		return fmt.Errorf("set records: %w", err)
	}
	return nil
}

// GetSetting returns the setting stored under key.
func (c *Client) GetSetting(key string) (string, bool, error) {
	data, ok, err := c.get(SettingPrefix + key)
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return string(data), ok, nil
}

// SetSetting stores value under key.
func (c *Client) SetSetting(key, value string) error {
	if err := c.set(SettingPrefix+key, []byte(value)); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}
