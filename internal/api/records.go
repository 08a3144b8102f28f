// ABOUTME: Record CRUD and daily summary handlers.
// ABOUTME: Validation failures map to 400 and unknown ids to 404.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/daylog/internal/daily"
	"github.com/harperreed/daylog/internal/models"
	"github.com/harperreed/daylog/internal/report"
)

type createRecordRequest struct {
	Type    string `json:"type" binding:"required"`
	Date    string `json:"date"`
	Value   string `json:"value" binding:"required"`
	Minutes int    `json:"minutes"`
}

type dayResponse struct {
	Date    string              `json:"date"`
	Title   string              `json:"title"`
	Lines   []string            `json:"lines"`
	Records []models.Record     `json:"records"`
	Markers []models.RecordType `json:"markers"`
}

// ListRecords returns records, optionally filtered by ?month=YYYY-MM and ?type=.
func (a *API) ListRecords(c *gin.Context) {
	prefix := ""
	if month := c.Query("month"); month != "" {
		m, err := report.ParseMonth(month)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		prefix = m.Prefix()
	}

	records := daily.Filter(a.store.ListAll(), prefix, models.RecordType(c.Query("type")))
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// CreateRecord validates an entry and stores it.
func (a *API) CreateRecord(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "type and value are required")
		return
	}

	t := models.RecordType(req.Type)
	if !t.IsKnown() {
		respondError(c, http.StatusBadRequest, "unknown record type: "+req.Type)
		return
	}

	args := []string{req.Value}
	if t == models.TypeReading {
		args = append(args, strconv.Itoa(req.Minutes))
	}
	date := req.Date
	if date == "" {
		date = a.store.Now().Format(models.DateLayout)
	}

	d, err := models.DraftFromInput(t, date, args)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, a.store.Create(d))
}

// GetRecord returns a single record.
func (a *API) GetRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	r, found := a.store.GetByID(id)
	if !found {
		respondError(c, http.StatusNotFound, "record not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateRecord merges the request body over an existing record.
func (a *API) UpdateRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var patch models.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.IsEmpty() {
		respondError(c, http.StatusBadRequest, "nothing to update")
		return
	}

	existing, found := a.store.GetByID(id)
	if !found {
		respondError(c, http.StatusNotFound, "record not found")
		return
	}

	if patch.Date != nil && !validDate(*patch.Date) {
		respondError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}
	merged := patch.Apply(existing)
	if patch.Value != nil || patch.Type != nil {
		if err := models.ValidateValue(merged.Type, merged.Value); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	updated, found := a.store.Update(id, patch)
	if !found {
		respondError(c, http.StatusNotFound, "record not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteRecord removes a record.
func (a *API) DeleteRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if !a.store.Delete(id) {
		respondError(c, http.StatusNotFound, "record not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDay returns the deduplicated records and summary lines for one date.
func (a *API) GetDay(c *gin.Context) {
	date := c.Param("date")
	if date == "today" {
		date = a.store.Now().Format(models.DateLayout)
	}
	if !validDate(date) {
		respondError(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	all := a.store.ListAll()
	records := daily.Day(all, date)
	lines := daily.Summary(all, date)
	markers := daily.Markers(records)[date]
	if markers == nil {
		markers = []models.RecordType{}
	}

	c.JSON(http.StatusOK, dayResponse{
		Date:    date,
		Title:   daily.Title(date),
		Lines:   lines,
		Records: records,
		Markers: markers,
	})
}
