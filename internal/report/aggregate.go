// ABOUTME: Monthly aggregation of daylog records into chart-ready series.
// ABOUTME: Produces weight, water, sleep, exercise and reading summaries for one month.
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/harperreed/daylog/internal/models"
)

// SleepBucket counts records of one sleep quality.
type SleepBucket struct {
	Quality models.SleepQuality `json:"quality" yaml:"quality"`
	Count   int                 `json:"count" yaml:"count"`
}

// SleepHistogram holds one bucket per quality in SleepQualities order.
type SleepHistogram []SleepBucket

// Count returns the bucket count for q.
func (h SleepHistogram) Count(q models.SleepQuality) int {
	for _, b := range h {
		if b.Quality == q {
			return b.Count
		}
	}
	return 0
}

// BookTotal is the reading time accumulated for one title.
type BookTotal struct {
	Title   string `json:"title" yaml:"title"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// MonthlyReport is the aggregated view of one calendar month.
// Weight and Water are indexed by day-1.
type MonthlyReport struct {
	Month          Month           `json:"month" yaml:"month"`
	Records        []models.Record `json:"records" yaml:"records"`
	Weight         []*float64      `json:"weight" yaml:"weight"`
	Water          []float64       `json:"water" yaml:"water"`
	Sleep          SleepHistogram  `json:"sleep" yaml:"sleep"`
	ExerciseDays   []string        `json:"exercise_days" yaml:"exercise_days"`
	ReadingDays    []string        `json:"reading_days" yaml:"reading_days"`
	ReadingMinutes int             `json:"reading_minutes" yaml:"reading_minutes"`
	Books          []BookTotal     `json:"books" yaml:"books"`
}

// Aggregate rolls the records dated within m into a MonthlyReport.
// Records are only read, never modified.
func Aggregate(records []models.Record, m Month) *MonthlyReport {
	days := m.Days()
	prefix := m.Prefix()

	rep := &MonthlyReport{
		Month:        m,
		Records:      []models.Record{},
		Weight:       make([]*float64, days),
		Water:        make([]float64, days),
		Sleep:        make(SleepHistogram, len(models.SleepQualities)),
		ExerciseDays: []string{},
		ReadingDays:  []string{},
		Books:        []BookTotal{},
	}
	for i, q := range models.SleepQualities {
		rep.Sleep[i] = SleepBucket{Quality: q}
	}

	latestWeight := make([]int64, days)
	exercise := make(map[string]bool)
	reading := make(map[string]bool)
	bookIndex := make(map[string]int)

	for _, r := range records {
		if !strings.HasPrefix(r.Date, prefix) {
			continue
		}
		rep.Records = append(rep.Records, r)

		day, ok := dayIndex(r.Date, prefix, days)
		if !ok {
			continue
		}

		switch r.Type {
		case models.TypeExercise:
			exercise[r.Date] = true
			continue
		case models.TypeReading:
			reading[r.Date] = true
			title, minutes := r.Value, 0
			if book, ok := models.ParseReading(r.Value); ok {
				title, minutes = book.Title, book.Minutes
			}
			rep.ReadingMinutes += minutes
			if i, ok := bookIndex[title]; ok {
				rep.Books[i].Minutes += minutes
			} else {
				bookIndex[title] = len(rep.Books)
				rep.Books = append(rep.Books, BookTotal{Title: title, Minutes: minutes})
			}
			continue
		}

		p, err := r.Payload()
		if err != nil {
			continue
		}
		switch v := p.(type) {
		case models.Weight:
			if rep.Weight[day] == nil || r.Timestamp >= latestWeight[day] {
				kg := v.Kilograms
				rep.Weight[day] = &kg
				latestWeight[day] = r.Timestamp
			}
		case models.Water:
			rep.Water[day] += v.Milliliters
		case models.Sleep:
			for i := range rep.Sleep {
				if rep.Sleep[i].Quality == v.Quality {
					rep.Sleep[i].Count++
				}
			}
		}
	}

	rep.ExerciseDays = sortedKeys(exercise)
	rep.ReadingDays = sortedKeys(reading)
	sort.SliceStable(rep.Books, func(i, j int) bool {
		return rep.Books[i].Minutes > rep.Books[j].Minutes
	})
	return rep
}

// WaterTotal returns the month's summed water intake.
func (r *MonthlyReport) WaterTotal() float64 {
	var total float64
	for _, ml := range r.Water {
		total += ml
	}
	return total
}

// WeightDays returns how many days have a weight entry.
func (r *MonthlyReport) WeightDays() int {
	n := 0
	for _, w := range r.Weight {
		if w != nil {
			n++
		}
	}
	return n
}

// dayIndex returns the zero-based day for a date carrying prefix.
func dayIndex(date, prefix string, days int) (int, bool) {
	day, err := strconv.Atoi(strings.TrimPrefix(date, prefix))
	if err != nil || day < 1 || day > days {
		return 0, false
	}
	return day - 1, true
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
