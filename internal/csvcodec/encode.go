// ABOUTME: CSV export for daylog records.
// ABOUTME: Writes a BOM-prefixed file with localized type labels and quoted values.
package csvcodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/daylog/internal/models"
)

// Header is the first row of every exported file.
var Header = []string{"ID", "日期", "類型", "值", "單位", "時間戳"}

// FormatTimestamp renders t the way zh-TW locales print a date-time,
// e.g. "2024/3/1 上午10:00:00" or "2024/3/1 下午3:05:09".
func FormatTimestamp(t time.Time) string {
	period := "上午"
	if t.Hour() >= 12 {
		period = "下午"
	}
	return t.Format("2006/1/2 ") + period + t.Format("3:04:05")
}

// Encode renders records as CSV using local time for timestamps.
// An empty slice renders as the empty string.
func Encode(records []models.Record) string {
	return EncodeIn(records, time.Local)
}

// EncodeIn renders records as CSV, formatting timestamps in loc.
func EncodeIn(records []models.Record, loc *time.Location) string {
	if len(records) == 0 {
		return ""
	}

	rows := make([]string, 0, len(records)+1)
	rows = append(rows, strings.Join(Header, ","))
	for _, r := range records {
		rows = append(rows, strings.Join([]string{
			strconv.FormatInt(r.ID, 10),
			r.Date,
			r.Type.Label(),
			`"` + strings.ReplaceAll(r.Value, `"`, `""`) + `"`,
			r.Unit,
			FormatTimestamp(time.UnixMilli(r.Timestamp).In(loc)),
		}, ","))
	}
	return BOM + strings.Join(rows, "\n")
}

// FileName returns the download name for a month's export.
func FileName(year, month int) string {
	return fmt.Sprintf("生活追蹤報表_%d年%d月.csv", year, month)
}
