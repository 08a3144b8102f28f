// ABOUTME: MCP resource implementations for daylog.
// ABOUTME: Provides daylog://today and daylog://month resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/daylog/internal/daily"
	"github.com/harperreed/daylog/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI = "daylog://today"
	monthURI = "daylog://month"
)

func (s *Server) registerResources() {
	// daylog://today - deduplicated records for today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Records",
		Description: "Today's records after daily dedup, with summary lines",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// daylog://month - current month report
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         monthURI,
		Name:        "This Month's Report",
		Description: "Weight, water, sleep, exercise and reading statistics for the current month",
		MIMEType:    "application/json",
	}, s.handleMonthResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	date := s.today()
	day := s.day(date)

	result := map[string]interface{}{
		"date":    day.Date,
		"title":   day.Title,
		"lines":   day.Lines,
		"records": day.Records,
		"markers": daily.Markers(day.Records)[date],
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleMonthResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	m := report.MonthOf(s.store.Now())
	rep := report.Aggregate(s.store.ListAll(), m)

	result := map[string]interface{}{
		"title":           m.Title(),
		"report":          rep,
		"water_total":     rep.WaterTotal(),
		"weight_days":     rep.WeightDays(),
		"exercise_days":   len(rep.ExerciseDays),
		"reading_days":    len(rep.ReadingDays),
		"reading_minutes": rep.ReadingMinutes,
	}
	return jsonResource(monthURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
