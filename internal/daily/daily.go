// ABOUTME: Grouping and display-dedup of records by calendar date.
// ABOUTME: Collapses latest-only types per day and orders a day's records by timestamp.
package daily

import (
	"sort"
	"strings"

	"github.com/harperreed/daylog/internal/models"
)

// GroupByDate buckets records by their Date, keeping iteration order within a date.
func GroupByDate(records []models.Record) map[string][]models.Record {
	groups := make(map[string][]models.Record)
	for _, r := range records {
		groups[r.Date] = append(groups[r.Date], r)
	}
	return groups
}

// Dedup applies the daily display policy to one day's records.
// Weight and sleep keep only the last record encountered in iteration order;
// every other type is kept. The result is sorted by timestamp, ties in input order.
func Dedup(records []models.Record) []models.Record {
	last := make(map[models.RecordType]int)
	for i, r := range records {
		if r.Type.LatestOnly() {
			last[r.Type] = i
		}
	}

	out := make([]models.Record, 0, len(records))
	for i, r := range records {
		if r.Type.LatestOnly() && last[r.Type] != i {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Day returns the deduplicated records for date.
func Day(records []models.Record, date string) []models.Record {
	return Dedup(GroupByDate(records)[date])
}

// Markers returns, per date, the distinct record types present in first-seen order.
func Markers(records []models.Record) map[string][]models.RecordType {
	markers := make(map[string][]models.RecordType)
	seen := make(map[string]map[models.RecordType]bool)
	for _, r := range records {
		if seen[r.Date] == nil {
			seen[r.Date] = make(map[models.RecordType]bool)
		}
		if seen[r.Date][r.Type] {
			continue
		}
		seen[r.Date][r.Type] = true
		markers[r.Date] = append(markers[r.Date], r.Type)
	}
	return markers
}

// Filter returns the records whose date starts with datePrefix and, when t is
// non-empty, whose type is t. Order is preserved.
func Filter(records []models.Record, datePrefix string, t models.RecordType) []models.Record {
	out := []models.Record{}
	for _, r := range records {
		if !strings.HasPrefix(r.Date, datePrefix) {
			continue
		}
		if t != "" && r.Type != t {
			continue
		}
		out = append(out, r)
	}
	return out
}
