// ABOUTME: Backend interface for daylog record persistence.
// ABOUTME: Defines the whole-collection load/save contract plus scalar settings.
package storage

import (
	"github.com/harperreed/daylog/internal/models"
)

// Backend persists the record collection as a whole.
// Save overwrites everything previously stored and must keep the slice order,
// since same-day display depends on store iteration order.
type Backend interface {
	// Record collection
	Load() ([]models.Record, error)
	Save(records []models.Record) error

	// Scalar settings, such as the last backup reminder month
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error

	// Lifecycle
	Close() error
}

// SettingLastReminded holds the year-month of the last backup reminder.
const SettingLastReminded = "backup.last_reminded"

// KnownSettings lists the setting keys copied when migrating between backends.
var KnownSettings = []string{SettingLastReminded}
