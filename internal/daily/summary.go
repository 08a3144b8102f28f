// ABOUTME: Human-readable rendering of a single day's records.
// ABOUTME: Formats each record as its localized label, value and unit.
package daily

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/daylog/internal/models"
)

// EmptyDay is shown when a date has no records.
const EmptyDay = "今天還沒有紀錄喔！"

// Title returns the heading for a day, e.g. "3月1日的紀錄".
// Dates that do not parse are returned as given.
func Title(date string) string {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d月%d日的紀錄", int(d.Month()), d.Day())
}

// Line formats one record for a daily summary, e.g. "體重: 70.5 kg".
func Line(r models.Record) string {
	return fmt.Sprintf("%s: %s", r.Type.Label(), strings.TrimSpace(r.Value+" "+r.Unit))
}

// Summary formats a deduplicated day as lines, in display order.
func Summary(records []models.Record, date string) []string {
	day := Day(records, date)
	lines := make([]string, 0, len(day))
	for _, r := range day {
		lines = append(lines, Line(r))
	}
	return lines
}
