// ABOUTME: CSV import for daylog records.
// ABOUTME: Quote-aware row splitting, date validation, and label-to-type mapping.
package csvcodec

import (
	"regexp"
	"strings"
	"time"

	"github.com/harperreed/daylog/internal/models"
)

// BOM is the UTF-8 byte-order mark written before exported files.
const BOM = "\uFEFF"

var datePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

// ImportResult is the outcome of parsing one CSV file.
type ImportResult struct {
	Records  []models.Record `json:"records"`
	Imported int             `json:"imported"`
	Skipped  int             `json:"skipped"`
}

// Parse turns CSV text into new records.
//
// The first line is a header and is dropped. Each remaining non-empty line is
// read as [_, date, typeLabel, value, unit?]; rows with fewer than four columns
// or a date that is not a real YYYY-MM-DD day are skipped. New ids continue from the
// largest id in existing, and timestamps are now plus the row's position in
// milliseconds so the batch keeps file order.
func Parse(text string, existing []models.Record, now time.Time) ImportResult {
	text = strings.TrimPrefix(text, BOM)
	lines := strings.Split(text, "\n")

	result := ImportResult{Records: []models.Record{}}
	maxID := maxID(existing)
	base := now.UnixMilli()

	if len(lines) <= 1 {
		return result
	}
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := SplitRow(line)
		if len(cols) < 4 || !validDate(strings.TrimSpace(cols[1])) {
			result.Skipped++
			continue
		}

		unit := ""
		if len(cols) > 4 {
			unit = strings.TrimSpace(stripQuotes(cols[4]))
		}

		maxID++
		result.Records = append(result.Records, models.Record{
			ID:        maxID,
			Timestamp: base + int64(len(result.Records)),
			Date:      strings.TrimSpace(cols[1]),
			Type:      models.TypeFromLabel(strings.TrimSpace(stripQuotes(cols[2]))),
			Value:     unquoteValue(cols[3]),
			Unit:      unit,
		})
	}

	result.Imported = len(result.Records)
	return result
}

// SplitRow splits a CSV row on commas that are not inside a double-quoted run.
// Quote characters are kept in the returned fields.
func SplitRow(line string) []string {
	var fields []string
	inQuotes := false
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	return append(fields, line[start:])
}

// validDate reports whether s is shaped YYYY-MM-DD with a month of 01-12 and a day of 01-31.
// Days past the end of a short month, such as 2024-02-30, pass.
func validDate(s string) bool {
	return datePattern.MatchString(s)
}

// stripQuotes removes one leading and one trailing double quote, if present.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// unquoteValue strips surrounding quotes and, when the field was fully
// quote-wrapped, collapses doubled quotes back to one.
func unquoteValue(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return stripQuotes(s)
}

func maxID(records []models.Record) int64 {
	var m int64
	for _, r := range records {
		if r.ID > m {
			m = r.ID
		}
	}
	return m
}
