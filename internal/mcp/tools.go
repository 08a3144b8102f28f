// ABOUTME: MCP tool implementations for daylog records.
// ABOUTME: Provides record CRUD, daily summaries, monthly reports and CSV import/export.
package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/daylog/internal/csvcodec"
	"github.com/harperreed/daylog/internal/daily"
	"github.com/harperreed/daylog/internal/models"
	"github.com/harperreed/daylog/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_record",
		Description: "Log a daily record (weight, water, sleep, exercise, reading)",
	}, s.handleAddRecord)

	// update_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_record",
		Description: "Change the date, value or unit of an existing record",
	}, s.handleUpdateRecord)

	// delete_record
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete a record by ID",
	}, s.handleDeleteRecord)

	// list_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List records, optionally filtered by month and type",
	}, s.handleListRecords)

	// get_day
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get the deduplicated records and summary lines for one day",
	}, s.handleGetDay)

	// monthly_report
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "monthly_report",
		Description: "Aggregate one month into weight, water, sleep, exercise and reading statistics",
	}, s.handleMonthlyReport)

	// import_csv
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "import_csv",
		Description: "Import records from CSV text in the daylog export format",
	}, s.handleImportCSV)

	// export_csv
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_csv",
		Description: "Export one month of records as CSV text",
	}, s.handleExportCSV)
}

// Tool input/output types

type addRecordInput struct {
	Type    string `json:"type" jsonschema:"Record type: weight, water, sleep, exercise or reading"`
	Value   string `json:"value" jsonschema:"Value: kg for weight, ml for water, 差/普通/好/很棒 for sleep, comma-separated tags for exercise, book title for reading"`
	Minutes int    `json:"minutes,omitempty" jsonschema:"Minutes read, required for reading"`
	Date    string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type recordOutput struct {
	Record  models.Record `json:"record"`
	Message string        `json:"message"`
}

type updateRecordInput struct {
	ID    int64  `json:"id" jsonschema:"Record ID"`
	Date  string `json:"date,omitempty" jsonschema:"New date (YYYY-MM-DD)"`
	Value string `json:"value,omitempty" jsonschema:"New stored value, in the same format the record already uses"`
	Unit  string `json:"unit,omitempty" jsonschema:"New unit label"`
}

type idInput struct {
	ID int64 `json:"id" jsonschema:"Record ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listRecordsInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month (YYYY-MM) to list"`
	Type  string `json:"type,omitempty" jsonschema:"Filter by record type"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results, keeping the most recent (default 50)"`
}

type listRecordsOutput struct {
	Records []models.Record `json:"records"`
	Count   int             `json:"count"`
}

type getDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type dayOutput struct {
	Date    string          `json:"date"`
	Title   string          `json:"title"`
	Lines   []string        `json:"lines"`
	Records []models.Record `json:"records"`
}

type monthInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month (YYYY-MM), defaults to the current month"`
}

type importCSVInput struct {
	CSV string `json:"csv" jsonschema:"CSV text with header row: ID,日期,類型,值,單位,時間戳"`
}

type importCSVOutput struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}

type exportCSVOutput struct {
	FileName string `json:"file_name"`
	CSV      string `json:"csv"`
	Count    int    `json:"count"`
}

// Tool handlers

func (s *Server) handleAddRecord(ctx context.Context, req *mcp.CallToolRequest, input addRecordInput) (*mcp.CallToolResult, recordOutput, error) {
	t := models.RecordType(input.Type)
	if !t.IsKnown() {
		return nil, recordOutput{}, fmt.Errorf("unknown record type: %s", input.Type)
	}

	args := []string{input.Value}
	if t == models.TypeReading {
		args = append(args, strconv.Itoa(input.Minutes))
	}

	date := input.Date
	if date == "" {
		date = s.today()
	}

	d, err := models.DraftFromInput(t, date, args)
	if err != nil {
		return nil, recordOutput{}, err
	}

	r := s.store.Create(d)
	return nil, recordOutput{
		Record:  r,
		Message: fmt.Sprintf("Added %s (ID: %d)", daily.Line(r), r.ID),
	}, nil
}

func (s *Server) handleUpdateRecord(ctx context.Context, req *mcp.CallToolRequest, input updateRecordInput) (*mcp.CallToolResult, recordOutput, error) {
	existing, ok := s.store.GetByID(input.ID)
	if !ok {
		return nil, recordOutput{}, fmt.Errorf("record not found: %d", input.ID)
	}

	var p models.Patch
	if input.Date != "" {
		if err := validateDate(input.Date); err != nil {
			return nil, recordOutput{}, err
		}
		p.Date = &input.Date
	}
	if input.Value != "" {
		if err := models.ValidateValue(existing.Type, input.Value); err != nil {
			return nil, recordOutput{}, err
		}
		p.Value = &input.Value
	}
	if input.Unit != "" {
		p.Unit = &input.Unit
	}
	if p.IsEmpty() {
		return nil, recordOutput{}, fmt.Errorf("nothing to update")
	}

	r, ok := s.store.Update(input.ID, p)
	if !ok {
		return nil, recordOutput{}, fmt.Errorf("record not found: %d", input.ID)
	}
	return nil, recordOutput{
		Record:  r,
		Message: fmt.Sprintf("Updated record %d", r.ID),
	}, nil
}

func (s *Server) handleDeleteRecord(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !s.store.Delete(input.ID) {
		return nil, simpleOutput{}, fmt.Errorf("record not found: %d", input.ID)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted record: %d", input.ID),
	}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, listRecordsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}

	prefix := ""
	if input.Month != "" {
		m, err := report.ParseMonth(input.Month)
		if err != nil {
			return nil, listRecordsOutput{}, err
		}
		prefix = m.Prefix()
	}

	records := daily.Filter(s.store.ListAll(), prefix, models.RecordType(input.Type))
	if len(records) > input.Limit {
		records = records[len(records)-input.Limit:]
	}

	return nil, listRecordsOutput{Records: records, Count: len(records)}, nil
}

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input getDayInput) (*mcp.CallToolResult, dayOutput, error) {
	date := input.Date
	if date == "" {
		date = s.today()
	}
	if err := validateDate(date); err != nil {
		return nil, dayOutput{}, err
	}

	return nil, s.day(date), nil
}

func (s *Server) handleMonthlyReport(ctx context.Context, req *mcp.CallToolRequest, input monthInput) (*mcp.CallToolResult, *report.MonthlyReport, error) {
	m, err := s.month(input.Month)
	if err != nil {
		return nil, nil, err
	}
	return nil, report.Aggregate(s.store.ListAll(), m), nil
}

func (s *Server) handleImportCSV(ctx context.Context, req *mcp.CallToolRequest, input importCSVInput) (*mcp.CallToolResult, importCSVOutput, error) {
	result := csvcodec.Parse(input.CSV, s.store.ListAll(), s.store.Now())
	imported := s.store.Import(result.Records)

	return nil, importCSVOutput{
		Imported: imported,
		Skipped:  result.Skipped,
		Message:  fmt.Sprintf("Imported %d records, skipped %d", imported, result.Skipped),
	}, nil
}

func (s *Server) handleExportCSV(ctx context.Context, req *mcp.CallToolRequest, input monthInput) (*mcp.CallToolResult, exportCSVOutput, error) {
	m, err := s.month(input.Month)
	if err != nil {
		return nil, exportCSVOutput{}, err
	}

	rep := report.Aggregate(s.store.ListAll(), m)
	return nil, exportCSVOutput{
		FileName: csvcodec.FileName(m.Year, int(m.Month)),
		CSV:      csvcodec.Encode(rep.Records),
		Count:    len(rep.Records),
	}, nil
}

func (s *Server) day(date string) dayOutput {
	all := s.store.ListAll()
	records := daily.Day(all, date)
	lines := daily.Summary(all, date)
	if len(lines) == 0 {
		lines = append(lines, daily.EmptyDay)
	}
	return dayOutput{
		Date:    date,
		Title:   daily.Title(date),
		Lines:   lines,
		Records: records,
	}
}

func (s *Server) month(value string) (report.Month, error) {
	if value == "" {
		return report.MonthOf(s.store.Now()), nil
	}
	return report.ParseMonth(value)
}

func validateDate(date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return nil
}
