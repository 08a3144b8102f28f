// ABOUTME: HTTP JSON API for daylog built on gin.
// ABOUTME: Exposes record CRUD, daily summaries, monthly reports and CSV import/export.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/harperreed/daylog/internal/logging"
	"github.com/harperreed/daylog/internal/models"
	"github.com/harperreed/daylog/internal/storage"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store  *storage.Store
	logger *log.Logger
}

// NewAPI constructs a handler set over store.
func NewAPI(store *storage.Store, logger *log.Logger) *API {
	if logger == nil {
		logger = logging.Discard()
	}
	return &API{store: store, logger: logger}
}

// NewRouter wires the API routes onto a new gin engine.
func NewRouter(a *API) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), a.requestLogger())

	r.GET("/healthz", a.Health)

	api := r.Group("/api")
	{
		api.GET("/records", a.ListRecords)
		api.POST("/records", a.CreateRecord)
		api.GET("/records/:id", a.GetRecord)
		api.PUT("/records/:id", a.UpdateRecord)
		api.DELETE("/records/:id", a.DeleteRecord)

		api.GET("/days/:date", a.GetDay)

		api.GET("/reports/:month", a.GetReport)
		api.GET("/reports/:month/csv", a.ExportCSV)

		api.POST("/import", a.Import)
	}

	return r
}

// Health reports liveness and the current record count.
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"records": len(a.store.ListAll()),
	})
}

func (a *API) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid record id")
		return 0, false
	}
	return id, true
}

func validDate(date string) bool {
	_, err := time.Parse(models.DateLayout, date)
	return err == nil
}
