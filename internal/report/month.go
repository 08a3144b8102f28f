// ABOUTME: Calendar month selector for monthly reports.
// ABOUTME: Parses YYYY-MM, navigates between months, and derives day counts.
package report

import (
	"fmt"
	"time"
)

// Month identifies one calendar month.
type Month struct {
	Year  int        `json:"year" yaml:"year"`
	Month time.Month `json:"month" yaml:"month"`
}

// ParseMonth parses "YYYY-MM". A full "YYYY-MM-DD" date is also accepted.
func ParseMonth(s string) (Month, error) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthOf(t), nil
		}
	}
	return Month{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns midnight UTC on the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Prev returns the month before m.
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Next returns the month after m.
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.First().AddDate(0, 1, -1).Day()
}

// Prefix returns the "YYYY-MM-" prefix shared by the month's record dates.
func (m Month) Prefix() string {
	return m.String() + "-"
}

// String formats the month as "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Title returns the localized report heading, e.g. "2024年 3月 統計報表".
func (m Month) Title() string {
	return fmt.Sprintf("%d年 %d月 統計報表", m.Year, int(m.Month))
}
