// ABOUTME: Plain-text rendering of a MonthlyReport.
// ABOUTME: Used by the report command for terminal output.
package report

import (
	"fmt"
	"io"
	"strconv"
)

// WriteText writes a readable summary of rep to w.
func WriteText(w io.Writer, rep *MonthlyReport) error {
	p := &printer{w: w}

	p.printf("%s\n\n", rep.Month.Title())

	p.printf("體重 (kg)\n")
	if rep.WeightDays() == 0 {
		p.printf("  本月沒有體重紀錄\n")
	}
	for i, kg := range rep.Weight {
		if kg != nil {
			p.printf("  %2d日  %s\n", i+1, formatFloat(*kg))
		}
	}

	p.printf("\n飲水 (ml)  合計 %s\n", formatFloat(rep.WaterTotal()))
	for i, ml := range rep.Water {
		if ml != 0 {
			p.printf("  %2d日  %s\n", i+1, formatFloat(ml))
		}
	}

	p.printf("\n睡眠品質\n")
	for _, b := range rep.Sleep {
		p.printf("  %s  %d\n", b.Quality, b.Count)
	}

	p.printf("\n運動天數  %d 天\n", len(rep.ExerciseDays))
	p.printf("閱讀天數  %d 天  共 %d 分鐘\n", len(rep.ReadingDays), rep.ReadingMinutes)
	if len(rep.Books) == 0 {
		p.printf("  本月沒有閱讀紀錄\n")
	}
	for _, b := range rep.Books {
		p.printf("  %s  %d 分鐘\n", b.Title, b.Minutes)
	}

	return p.err
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
