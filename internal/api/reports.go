// ABOUTME: Monthly report, CSV export and import handlers.
// ABOUTME: Reports are computed on request from the full collection.
package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/daylog/internal/csvcodec"
	"github.com/harperreed/daylog/internal/report"
	"github.com/harperreed/daylog/internal/storage"
)

const maxImportBytes = 10 << 20

type reportResponse struct {
	Title      string                `json:"title"`
	WaterTotal float64               `json:"water_total"`
	WeightDays int                   `json:"weight_days"`
	Report     *report.MonthlyReport `json:"report"`
}

// GetReport aggregates the month named by :month.
func (a *API) GetReport(c *gin.Context) {
	m, ok := a.monthParam(c)
	if !ok {
		return
	}

	rep := report.Aggregate(a.store.ListAll(), m)
	c.JSON(http.StatusOK, reportResponse{
		Title:      m.Title(),
		WaterTotal: rep.WaterTotal(),
		WeightDays: rep.WeightDays(),
		Report:     rep,
	})
}

// ExportCSV downloads the month's records as a CSV file.
func (a *API) ExportCSV(c *gin.Context) {
	m, ok := a.monthParam(c)
	if !ok {
		return
	}

	rep := report.Aggregate(a.store.ListAll(), m)
	name := csvcodec.FileName(m.Year, int(m.Month))
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvcodec.Encode(rep.Records)))
}

// Import appends records from the request body. A JSON body is read as a
// full export snapshot; anything else is parsed as CSV.
func (a *API) Import(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "request body exceeds 10 MB")
			return
		}
		respondError(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		export, err := storage.ParseExport(body)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		imported := a.store.ImportData(export)
		c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": 0})
		return
	}

	result := csvcodec.Parse(string(body), a.store.ListAll(), a.store.Now())
	imported := a.store.Import(result.Records)
	a.logger.Info("csv import", "imported", imported, "skipped", result.Skipped)
	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": result.Skipped})
}

func (a *API) monthParam(c *gin.Context) (report.Month, bool) {
	value := c.Param("month")
	if value == "current" {
		return report.MonthOf(a.store.Now()), true
	}
	m, err := report.ParseMonth(value)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return report.Month{}, false
	}
	return m, true
}
