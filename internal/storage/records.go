// ABOUTME: Record collection and settings persistence for the SQLite backend.
// ABOUTME: Save rewrites the whole table in one transaction, keeping slice order.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/daylog/internal/models"
)

// Load returns every stored record in insertion order.
func (d *DB) Load() ([]models.Record, error) {
	rows, err := d.db.Query(`
		SELECT id, timestamp, date, type, value, unit
		FROM records
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var r models.Record
		var recordType string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Date, &recordType, &r.Value, &r.Unit); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Type = models.RecordType(recordType)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Save replaces the stored collection with records.
func (d *DB) Save(records []models.Record) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (seq, id, timestamp, date, type, value, unit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i+1, r.ID, r.Timestamp, r.Date, string(r.Type), r.Value, r.Unit); err != nil {
			return fmt.Errorf("insert record %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetSetting returns the value stored under key.
func (d *DB) GetSetting(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (d *DB) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
