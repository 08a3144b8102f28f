// ABOUTME: Tests for date grouping, display dedup, and calendar markers.
// ABOUTME: Covers latest-only collapse, timestamp ordering, and record conservation.
package daily

import (
	"reflect"
	"testing"

	"github.com/harperreed/daylog/internal/models"
)

func rec(id, ts int64, date string, t models.RecordType, value string) models.Record {
	return models.Record{ID: id, Timestamp: ts, Date: date, Type: t, Value: value, Unit: models.DefaultUnits[t]}
}

func ids(records []models.Record) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestGroupByDateKeepsEveryRecord(t *testing.T) {
	records := []models.Record{
		rec(1, 10, "2024-03-01", models.TypeWater, "500"),
		rec(2, 20, "2024-03-02", models.TypeWater, "200"),
		rec(3, 30, "2024-03-01", models.TypeWeight, "70"),
		rec(4, 40, "2024-03-01", models.TypeWater, "300"),
		rec(5, 50, "2024-04-01", models.TypeSleep, "好"),
	}

	groups := GroupByDate(records)

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != len(records) {
		t.Errorf("grouped %d records, want %d", total, len(records))
	}
	if got := ids(groups["2024-03-01"]); !reflect.DeepEqual(got, []int64{1, 3, 4}) {
		t.Errorf("2024-03-01 ids = %v, want [1 3 4]", got)
	}
}

func TestGroupByDateEmpty(t *testing.T) {
	if got := GroupByDate(nil); len(got) != 0 {
		t.Errorf("expected no groups, got %v", got)
	}
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		want    []int64
	}{
		{
			name: "weight keeps later in iteration order",
			records: []models.Record{
				rec(1, 10, "2024-03-01", models.TypeWeight, "70"),
				rec(2, 20, "2024-03-01", models.TypeWeight, "71"),
			},
			want: []int64{2},
		},
		{
			name: "weight keeps last seen even with smaller timestamp",
			records: []models.Record{
				rec(1, 20, "2024-03-01", models.TypeWeight, "70"),
				rec(2, 10, "2024-03-01", models.TypeWeight, "71"),
			},
			want: []int64{2},
		},
		{
			name: "exercise keeps all",
			records: []models.Record{
				rec(1, 10, "2024-03-01", models.TypeExercise, "腿"),
				rec(2, 20, "2024-03-01", models.TypeExercise, "有氧"),
			},
			want: []int64{1, 2},
		},
		{
			name: "sleep collapses, water and reading kept, sorted by timestamp",
			records: []models.Record{
				rec(1, 50, "2024-03-01", models.TypeSleep, "差"),
				rec(2, 40, "2024-03-01", models.TypeWater, "300"),
				rec(3, 10, "2024-03-01", models.TypeReading, "書 (10 分鐘)"),
				rec(4, 30, "2024-03-01", models.TypeSleep, "好"),
				rec(5, 20, "2024-03-01", models.TypeWater, "200"),
			},
			want: []int64{3, 5, 4, 2},
		},
		{
			name: "missing timestamps sort first and keep input order",
			records: []models.Record{
				rec(1, 5, "2024-03-01", models.TypeWater, "100"),
				rec(2, 0, "2024-03-01", models.TypeWater, "200"),
				rec(3, 0, "2024-03-01", models.TypeReading, "書 (1 分鐘)"),
			},
			want: []int64{2, 3, 1},
		},
		{
			name: "unknown types kept",
			records: []models.Record{
				rec(1, 10, "2024-03-01", models.RecordType("mood"), "7"),
				rec(2, 20, "2024-03-01", models.RecordType("mood"), "8"),
			},
			want: []int64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Dedup(tt.records)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dedup() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupDoesNotMutateInput(t *testing.T) {
	records := []models.Record{
		rec(1, 20, "2024-03-01", models.TypeWater, "100"),
		rec(2, 10, "2024-03-01", models.TypeWater, "200"),
	}
	Dedup(records)
	if records[0].ID != 1 {
		t.Error("Dedup reordered its input")
	}
}

func TestDay(t *testing.T) {
	records := []models.Record{
		rec(1, 10, "2024-03-01", models.TypeWeight, "70"),
		rec(2, 20, "2024-03-02", models.TypeWeight, "71"),
		rec(3, 30, "2024-03-01", models.TypeWeight, "72"),
	}

	if got := ids(Day(records, "2024-03-01")); !reflect.DeepEqual(got, []int64{3}) {
		t.Errorf("Day ids = %v, want [3]", got)
	}
	if got := Day(records, "2024-03-09"); len(got) != 0 {
		t.Errorf("expected empty day, got %v", got)
	}
}

func TestMarkers(t *testing.T) {
	records := []models.Record{
		rec(1, 10, "2024-03-01", models.TypeWater, "100"),
		rec(2, 20, "2024-03-01", models.TypeWeight, "70"),
		rec(3, 30, "2024-03-01", models.TypeWater, "100"),
		rec(4, 40, "2024-03-02", models.TypeReading, "書 (5 分鐘)"),
	}

	got := Markers(records)
	want := map[string][]models.RecordType{
		"2024-03-01": {models.TypeWater, models.TypeWeight},
		"2024-03-02": {models.TypeReading},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Markers() = %v, want %v", got, want)
	}
}

func TestSummary(t *testing.T) {
	records := []models.Record{
		rec(1, 10, "2024-03-01", models.TypeWeight, "70"),
		rec(2, 20, "2024-03-01", models.TypeWeight, "70.5"),
		rec(3, 30, "2024-03-01", models.TypeReading, "深度工作 (45 分鐘)"),
		{ID: 4, Timestamp: 40, Date: "2024-03-01", Type: models.RecordType("mood"), Value: "7"},
	}

	want := []string{"體重: 70.5 kg", "閱讀: 深度工作 (45 分鐘) 本書", "mood: 7"}
	if got := Summary(records, "2024-03-01"); !reflect.DeepEqual(got, want) {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestTitle(t *testing.T) {
	if got := Title("2024-03-01"); got != "3月1日的紀錄" {
		t.Errorf("Title() = %q", got)
	}
	if got := Title("bad"); got != "bad" {
		t.Errorf("Title(bad) = %q", got)
	}
}

func TestFilter(t *testing.T) {
	records := []models.Record{
		rec(1, 10, "2024-02-29", models.TypeWater, "250"),
		rec(2, 20, "2024-03-01", models.TypeWeight, "70"),
		rec(3, 30, "2024-03-15", models.TypeWater, "500"),
	}

	tests := []struct {
		name    string
		prefix  string
		typ     models.RecordType
		wantIDs []int64
	}{
		{"all", "", "", []int64{1, 2, 3}},
		{"month", "2024-03-", "", []int64{2, 3}},
		{"type", "", models.TypeWater, []int64{1, 3}},
		{"month and type", "2024-03-", models.TypeWater, []int64{3}},
		{"no match", "2023-", "", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []int64{}
			for _, r := range Filter(records, tt.prefix, tt.typ) {
				ids = append(ids, r.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("Filter() ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}
