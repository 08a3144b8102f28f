// ABOUTME: Once-per-calendar-month backup reminder.
// ABOUTME: Persists the last reminded year-month as a single store setting.
package backup

import (
	"time"

	"github.com/harperreed/daylog/internal/models"
	"github.com/harperreed/daylog/internal/storage"
)

// MonthKey formats t as the reminder key "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Reminder decides when to prompt for a monthly backup.
type Reminder struct {
	store  *storage.Store
	now    func() time.Time
	notify func(month string)
}

// NewReminder creates a reminder that calls notify at most once per calendar month.
func NewReminder(store *storage.Store, notify func(month string)) *Reminder {
	return &Reminder{store: store, now: store.Now, notify: notify}
}

// Due reports whether the current month has not been reminded yet.
// Values stored by older versions (month number only) never match and so are due.
func (r *Reminder) Due() bool {
	last, ok := r.store.GetSetting(storage.SettingLastReminded)
	return !ok || last != MonthKey(r.now())
}

// Check records the current month and notifies when a reminder is due.
// It reports whether a reminder fired.
func (r *Reminder) Check() bool {
	if !r.Due() {
		return false
	}
	month := MonthKey(r.now())
	r.store.SetSetting(storage.SettingLastReminded, month)
	if r.notify != nil {
		r.notify(month)
	}
	return true
}

// Hook adapts Check for storage.Store.OnCreate.
func (r *Reminder) Hook() func(models.Record) {
	return func(models.Record) { r.Check() }
}
