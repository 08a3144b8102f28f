// ABOUTME: Tests for CSV import and export.
// ABOUTME: Covers quote-aware splitting, row rejection, id/timestamp assignment, and round trips.
package csvcodec

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/daylog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importTime = time.UnixMilli(1710000000000)

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `1,2024-03-01,運動,"腿, 有氧",部位`, []string{"1", "2024-03-01", "運動", `"腿, 有氧"`, "部位"}},
		{"doubled quotes", `1,"a ""b"", c",x`, []string{"1", `"a ""b"", c"`, "x"}},
		{"trailing empty", "a,b,", []string{"a", "b", ""}},
		{"single field", "abc", []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitRow(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitRow(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	text := strings.Join([]string{
		"ID,日期,類型,值,單位",
		`x,2024-03-01,體重,"70.5",kg`,
		`x,2024-03-01,運動,"腿, 有氧",部位`,
		"",
		`x,2024-13-40,飲水,500,ml`,
		`x,2024-3-1,飲水,500,ml`,
		`x,2024-03-02,飲水`,
		`x,2024-03-02,"閱讀","深度工作 (45 分鐘)","本書"`,
		`x,2024-03-03,冥想,10`,
	}, "\n")

	existing := []models.Record{{ID: 4}, {ID: 9}}
	result := Parse(text, existing, importTime)

	require.Equal(t, 4, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Records, 4)

	want := []models.Record{
		{ID: 10, Timestamp: 1710000000000, Date: "2024-03-01", Type: models.TypeWeight, Value: "70.5", Unit: "kg"},
		{ID: 11, Timestamp: 1710000000001, Date: "2024-03-01", Type: models.TypeExercise, Value: "腿, 有氧", Unit: "部位"},
		{ID: 12, Timestamp: 1710000000002, Date: "2024-03-02", Type: models.TypeReading, Value: "深度工作 (45 分鐘)", Unit: "本書"},
		{ID: 13, Timestamp: 1710000000003, Date: "2024-03-03", Type: models.RecordType("冥想"), Value: "10", Unit: ""},
	}
	assert.Equal(t, want, result.Records)
}

func TestParseInvalidDateNotCounted(t *testing.T) {
	result := Parse("header\nx,2024-13-40,體重,70,kg", nil, importTime)
	assert.Zero(t, result.Imported)
	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.Skipped)
}

func TestParseDateIsLexical(t *testing.T) {
	tests := []struct {
		date string
		ok   bool
	}{
		{"2024-03-01", true},
		{"2024-02-30", true},
		{"2023-02-29", true},
		{"2024-12-31", true},
		{"2024-13-40", false},
		{"2024-00-10", false},
		{"2024-03-00", false},
		{"2024-03-32", false},
		{"2024-3-1", false},
		{"24-03-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			result := Parse("header\nx,"+tt.date+",飲水,500,ml", nil, importTime)
			if tt.ok {
				require.Len(t, result.Records, 1)
				assert.Equal(t, tt.date, result.Records[0].Date)
				return
			}
			assert.Empty(t, result.Records)
			assert.Equal(t, 1, result.Skipped)
		})
	}
}

func TestParseHeaderOnlyAndEmpty(t *testing.T) {
	for _, text := range []string{"", "ID,日期,類型,值,單位", "ID,日期\n\n\n"} {
		result := Parse(text, nil, importTime)
		assert.Zero(t, result.Imported, "text %q", text)
		assert.NotNil(t, result.Records)
	}
}

func TestParseFirstIDIsOne(t *testing.T) {
	result := Parse("h\n,2024-03-01,飲水,250,ml", nil, importTime)
	require.Len(t, result.Records, 1)
	assert.Equal(t, int64(1), result.Records[0].ID)
}

func TestParseCRLFAndBOM(t *testing.T) {
	text := BOM + "ID,日期,類型,值,單位\r\n1,2024-03-01,睡眠,\"好\",品質\r\n"
	result := Parse(text, nil, importTime)
	require.Len(t, result.Records, 1)
	assert.Equal(t, models.TypeSleep, result.Records[0].Type)
	assert.Equal(t, "好", result.Records[0].Value)
	assert.Equal(t, "品質", result.Records[0].Unit)
}

func TestParseStripsOneQuoteOnly(t *testing.T) {
	result := Parse("h\nx,2024-03-01,\"\"飲水\"\",\"500\"", nil, importTime)
	require.Len(t, result.Records, 1)
	assert.Equal(t, models.RecordType(`"飲水"`), result.Records[0].Type)
}

func TestEncode(t *testing.T) {
	records := []models.Record{
		{ID: 1, Timestamp: time.Date(2024, 3, 1, 8, 5, 9, 0, time.UTC).UnixMilli(), Date: "2024-03-01", Type: models.TypeWeight, Value: "70.5", Unit: "kg"},
		{ID: 2, Timestamp: time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC).UnixMilli(), Date: "2024-03-01", Type: models.TypeReading, Value: `他說"好" (5 分鐘)`, Unit: "本書"},
		{ID: 3, Timestamp: 0, Date: "2024-03-02", Type: models.RecordType("mood"), Value: "7"},
	}

	got := EncodeIn(records, time.UTC)
	want := BOM + "ID,日期,類型,值,單位,時間戳\n" +
		`1,2024-03-01,體重,"70.5",kg,2024/3/1 上午8:05:09` + "\n" +
		`2,2024-03-01,閱讀,"他說""好"" (5 分鐘)",本書,2024/3/1 下午9:00:00` + "\n" +
		`3,2024-03-02,mood,"7",,1970/1/1 上午12:00:00`

	assert.Equal(t, want, got)
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"midnight", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024/3/1 上午12:00:00"},
		{"morning", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), "2024/3/1 上午10:00:00"},
		{"last morning minute", time.Date(2024, 3, 1, 11, 59, 59, 0, time.UTC), "2024/3/1 上午11:59:59"},
		{"noon", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "2024/3/1 下午12:00:00"},
		{"afternoon", time.Date(2024, 12, 31, 15, 5, 9, 0, time.UTC), "2024/12/31 下午3:05:09"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.at))
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
}

func TestRoundTripKnownTypes(t *testing.T) {
	records := []models.Record{
		{ID: 1, Timestamp: 100, Date: "2024-03-01", Type: models.TypeWeight, Value: "70.5", Unit: "kg"},
		{ID: 2, Timestamp: 200, Date: "2024-03-01", Type: models.TypeWater, Value: "500", Unit: "ml"},
		{ID: 3, Timestamp: 300, Date: "2024-03-01", Type: models.TypeSleep, Value: "很棒", Unit: "品質"},
		{ID: 4, Timestamp: 400, Date: "2024-03-02", Type: models.TypeExercise, Value: "腿, 背, 有氧", Unit: "部位"},
		{ID: 5, Timestamp: 500, Date: "2024-03-02", Type: models.TypeReading, Value: `Go, "The Book" (30 分鐘)`, Unit: "本書"},
	}

	result := Parse(EncodeIn(records, time.UTC), nil, importTime)
	require.Equal(t, len(records), result.Imported)

	for i, r := range result.Records {
		orig := records[i]
		assert.Equal(t, orig.Date, r.Date)
		assert.Equal(t, orig.Type, r.Type)
		assert.Equal(t, orig.Value, r.Value)
		assert.Equal(t, orig.Unit, r.Unit)
	}
}

func TestRoundTripUnknownType(t *testing.T) {
	records := []models.Record{
		{ID: 1, Timestamp: 1, Date: "2024-03-01", Type: models.RecordType("meditation"), Value: "20", Unit: "min"},
	}

	result := Parse(Encode(records), nil, importTime)
	require.Len(t, result.Records, 1)
	assert.Equal(t, models.RecordType("meditation"), result.Records[0].Type)
	assert.Equal(t, "20", result.Records[0].Value)
	assert.Equal(t, "min", result.Records[0].Unit)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "生活追蹤報表_2024年3月.csv", FileName(2024, 3))
}
