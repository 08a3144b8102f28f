// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, record tool handlers, CSV tools, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/daylog/internal/csvcodec"
	"github.com/harperreed/daylog/internal/models"
	"github.com/harperreed/daylog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

// setupTestStore creates a store over a test database in a temp directory.
func setupTestStore(t *testing.T) *storage.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "daylog-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "daylog.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return storage.NewStore(db, storage.WithClock(func() time.Time { return testNow }))
}

func setupTestServer(t *testing.T, records ...models.Record) *Server {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend(records...),
		storage.WithClock(func() time.Time { return testNow }))
	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server, err := NewServer(setupTestStore(t))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	if server == nil {
		t.Fatal("Expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.store == nil {
		t.Error("Expected non-nil store")
	}
}

func TestHandleAddRecord(t *testing.T) {
	server, _ := NewServer(setupTestStore(t))
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addRecordInput
		wantValue string
		wantDate  string
		wantErr   bool
		errSubstr string
	}{
		{
			name:      "weight defaults to today",
			input:     addRecordInput{Type: "weight", Value: "70.5"},
			wantValue: "70.5",
			wantDate:  "2024-03-15",
		},
		{
			name:      "sleep alias",
			input:     addRecordInput{Type: "sleep", Value: "great", Date: "2024-03-14"},
			wantValue: "很棒",
			wantDate:  "2024-03-14",
		},
		{
			name:      "exercise tags",
			input:     addRecordInput{Type: "exercise", Value: "腿, 有氧"},
			wantValue: "腿, 有氧",
			wantDate:  "2024-03-15",
		},
		{
			name:      "reading",
			input:     addRecordInput{Type: "reading", Value: "深度工作", Minutes: 45},
			wantValue: "深度工作 (45 分鐘)",
			wantDate:  "2024-03-15",
		},
		{
			name:      "reading without minutes",
			input:     addRecordInput{Type: "reading", Value: "深度工作"},
			wantErr:   true,
			errSubstr: "minutes",
		},
		{
			name:      "water must be whole",
			input:     addRecordInput{Type: "water", Value: "12.5"},
			wantErr:   true,
			errSubstr: "whole number",
		},
		{
			name:      "unknown type",
			input:     addRecordInput{Type: "steps", Value: "100"},
			wantErr:   true,
			errSubstr: "unknown record type",
		},
		{
			name:      "bad date",
			input:     addRecordInput{Type: "weight", Value: "70", Date: "15/03/2024"},
			wantErr:   true,
			errSubstr: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddRecord(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.Record.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", output.Record.Value, tt.wantValue)
			}
			if output.Record.Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", output.Record.Date, tt.wantDate)
			}
			if output.Record.ID == 0 {
				t.Error("Expected assigned ID")
			}
			if output.Message == "" {
				t.Error("Expected non-empty message")
			}
		})
	}
}

func TestHandleAddRecordAssignsSequentialIDs(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, out, err := server.handleAddRecord(ctx, &mcp.CallToolRequest{}, addRecordInput{Type: "water", Value: "250"})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if out.Record.ID != i {
			t.Errorf("ID = %d, want %d", out.Record.ID, i)
		}
	}
}

func TestHandleUpdateRecord(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 1, Timestamp: 100, Date: "2024-03-01", Type: models.TypeWeight, Value: "70", Unit: "kg"},
	)
	ctx := context.Background()

	_, out, err := server.handleUpdateRecord(ctx, &mcp.CallToolRequest{}, updateRecordInput{ID: 1, Value: "69.5", Date: "2024-03-02"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if out.Record.Value != "69.5" || out.Record.Date != "2024-03-02" {
		t.Errorf("updated record = %+v", out.Record)
	}
	if out.Record.Timestamp != 100 {
		t.Errorf("Timestamp changed to %d", out.Record.Timestamp)
	}

	tests := []struct {
		name      string
		input     updateRecordInput
		errSubstr string
	}{
		{"unknown id", updateRecordInput{ID: 99, Value: "70"}, "not found"},
		{"invalid value", updateRecordInput{ID: 1, Value: "heavy"}, "weight"},
		{"invalid date", updateRecordInput{ID: 1, Date: "yesterday"}, "invalid date"},
		{"empty patch", updateRecordInput{ID: 1}, "nothing to update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleUpdateRecord(ctx, &mcp.CallToolRequest{}, tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestHandleDeleteRecord(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 1, Date: "2024-03-01", Type: models.TypeWater, Value: "250"},
	)
	ctx := context.Background()

	_, out, err := server.handleDeleteRecord(ctx, &mcp.CallToolRequest{}, idInput{ID: 1})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out.Message, "1") {
		t.Errorf("Message = %q", out.Message)
	}

	if _, _, err := server.handleDeleteRecord(ctx, &mcp.CallToolRequest{}, idInput{ID: 1}); err == nil {
		t.Error("Expected error deleting a missing record")
	}
}

func TestHandleListRecords(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 1, Date: "2024-02-29", Type: models.TypeWater, Value: "250"},
		models.Record{ID: 2, Date: "2024-03-01", Type: models.TypeWeight, Value: "70"},
		models.Record{ID: 3, Date: "2024-03-02", Type: models.TypeWater, Value: "500"},
		models.Record{ID: 4, Date: "2024-03-03", Type: models.TypeWater, Value: "300"},
	)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   listRecordsInput
		wantIDs []int64
		wantErr bool
	}{
		{"all", listRecordsInput{}, []int64{1, 2, 3, 4}, false},
		{"month", listRecordsInput{Month: "2024-03"}, []int64{2, 3, 4}, false},
		{"month and type", listRecordsInput{Month: "2024-03", Type: "water"}, []int64{3, 4}, false},
		{"limit keeps latest", listRecordsInput{Limit: 2}, []int64{3, 4}, false},
		{"bad month", listRecordsInput{Month: "March"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleListRecords(ctx, &mcp.CallToolRequest{}, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			var ids []int64
			for _, r := range out.Records {
				ids = append(ids, r.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
					break
				}
			}
			if out.Count != len(tt.wantIDs) {
				t.Errorf("Count = %d, want %d", out.Count, len(tt.wantIDs))
			}
		})
	}
}

func TestHandleGetDay(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 1, Timestamp: 10, Date: "2024-03-15", Type: models.TypeWeight, Value: "70", Unit: "kg"},
		models.Record{ID: 2, Timestamp: 20, Date: "2024-03-15", Type: models.TypeWater, Value: "250", Unit: "ml"},
		models.Record{ID: 3, Timestamp: 30, Date: "2024-03-15", Type: models.TypeWeight, Value: "69.8", Unit: "kg"},
	)
	ctx := context.Background()

	_, out, err := server.handleGetDay(ctx, &mcp.CallToolRequest{}, getDayInput{})
	if err != nil {
		t.Fatalf("get_day failed: %v", err)
	}
	if out.Date != "2024-03-15" {
		t.Errorf("Date = %q", out.Date)
	}
	if out.Title != "3月15日的紀錄" {
		t.Errorf("Title = %q", out.Title)
	}
	want := []string{"飲水: 250 ml", "體重: 69.8 kg"}
	if len(out.Lines) != len(want) || out.Lines[0] != want[0] || out.Lines[1] != want[1] {
		t.Errorf("Lines = %q, want %q", out.Lines, want)
	}

	_, empty, err := server.handleGetDay(ctx, &mcp.CallToolRequest{}, getDayInput{Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("get_day failed: %v", err)
	}
	if len(empty.Lines) != 1 || empty.Lines[0] != "今天還沒有紀錄喔！" {
		t.Errorf("empty day Lines = %q", empty.Lines)
	}
	if len(empty.Records) != 0 {
		t.Errorf("empty day Records = %v", empty.Records)
	}
}

func TestHandleMonthlyReport(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 1, Timestamp: 10, Date: "2024-03-01", Type: models.TypeWater, Value: "250"},
		models.Record{ID: 2, Timestamp: 20, Date: "2024-03-01", Type: models.TypeWater, Value: "500"},
		models.Record{ID: 3, Timestamp: 30, Date: "2024-03-02", Type: models.TypeReading, Value: "書 (30 分鐘)"},
		models.Record{ID: 4, Timestamp: 40, Date: "2024-02-02", Type: models.TypeWater, Value: "900"},
	)
	ctx := context.Background()

	_, rep, err := server.handleMonthlyReport(ctx, &mcp.CallToolRequest{}, monthInput{})
	if err != nil {
		t.Fatalf("monthly_report failed: %v", err)
	}
	if rep.Month.String() != "2024-03" {
		t.Errorf("Month = %s, want current month 2024-03", rep.Month)
	}
	if rep.Water[0] != 750 {
		t.Errorf("Water[0] = %v, want 750", rep.Water[0])
	}
	if rep.ReadingMinutes != 30 {
		t.Errorf("ReadingMinutes = %d, want 30", rep.ReadingMinutes)
	}

	_, feb, err := server.handleMonthlyReport(ctx, &mcp.CallToolRequest{}, monthInput{Month: "2024-02"})
	if err != nil {
		t.Fatalf("monthly_report failed: %v", err)
	}
	if len(feb.Water) != 29 || feb.Water[1] != 900 {
		t.Errorf("February water series = %v", feb.Water)
	}

	if _, _, err := server.handleMonthlyReport(ctx, &mcp.CallToolRequest{}, monthInput{Month: "2024-13"}); err == nil {
		t.Error("Expected error for invalid month")
	}
}

func TestHandleImportAndExportCSV(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 5, Timestamp: 1, Date: "2024-03-01", Type: models.TypeWater, Value: "250", Unit: "ml"},
	)
	ctx := context.Background()

	csv := "ID,日期,類型,值,單位,時間戳\n" +
		"1,2024-03-02,閱讀,\"Go, in Action (30 分鐘)\",本書,2024/3/2 上午10:00:00\n" +
		"2,bad-date,飲水,100,ml,\n" +
		"3,2024-03-03,體重,70,kg,\n"

	_, out, err := server.handleImportCSV(ctx, &mcp.CallToolRequest{}, importCSVInput{CSV: csv})
	if err != nil {
		t.Fatalf("import_csv failed: %v", err)
	}
	if out.Imported != 2 || out.Skipped != 1 {
		t.Errorf("Imported/Skipped = %d/%d, want 2/1", out.Imported, out.Skipped)
	}

	all := server.store.ListAll()
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[1].ID != 6 || all[1].Value != "Go, in Action (30 分鐘)" {
		t.Errorf("imported record = %+v", all[1])
	}

	_, exp, err := server.handleExportCSV(ctx, &mcp.CallToolRequest{}, monthInput{Month: "2024-03"})
	if err != nil {
		t.Fatalf("export_csv failed: %v", err)
	}
	if exp.Count != 3 {
		t.Errorf("Count = %d, want 3", exp.Count)
	}
	if exp.FileName != csvcodec.FileName(2024, 3) {
		t.Errorf("FileName = %q", exp.FileName)
	}
	if !strings.HasPrefix(exp.CSV, csvcodec.BOM) {
		t.Error("export should start with a BOM")
	}
	if !strings.Contains(exp.CSV, `"Go, in Action (30 分鐘)"`) {
		t.Errorf("comma value not quoted in export:\n%s", exp.CSV)
	}
}

func TestHandleExportCSVEmptyMonth(t *testing.T) {
	server := setupTestServer(t)

	_, out, err := server.handleExportCSV(context.Background(), &mcp.CallToolRequest{}, monthInput{Month: "2024-01"})
	if err != nil {
		t.Fatalf("export_csv failed: %v", err)
	}
	if out.Count != 0 || out.CSV != "" {
		t.Errorf("empty month export = %+v", out)
	}
}

func TestHandleTodayResource(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 1, Timestamp: 10, Date: "2024-03-15", Type: models.TypeSleep, Value: "好", Unit: "品質"},
		models.Record{ID: 2, Timestamp: 20, Date: "2024-03-14", Type: models.TypeWater, Value: "250", Unit: "ml"},
	)

	result, err := server.handleTodayResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("today resource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(result.Contents))
	}
	content := result.Contents[0]
	if content.URI != "daylog://today" {
		t.Errorf("URI = %q", content.URI)
	}
	if content.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q", content.MIMEType)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(content.Text), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["date"] != "2024-03-15" {
		t.Errorf("date = %v", data["date"])
	}
	records, ok := data["records"].([]interface{})
	if !ok || len(records) != 1 {
		t.Errorf("records = %v", data["records"])
	}
	markers, ok := data["markers"].([]interface{})
	if !ok || len(markers) != 1 || markers[0] != "sleep" {
		t.Errorf("markers = %v", data["markers"])
	}
}

func TestHandleMonthResource(t *testing.T) {
	server := setupTestServer(t,
		models.Record{ID: 1, Timestamp: 10, Date: "2024-03-01", Type: models.TypeWater, Value: "250"},
		models.Record{ID: 2, Timestamp: 20, Date: "2024-03-02", Type: models.TypeWater, Value: "500"},
		models.Record{ID: 3, Timestamp: 30, Date: "2024-03-02", Type: models.TypeExercise, Value: "腿"},
	)

	result, err := server.handleMonthResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("month resource failed: %v", err)
	}
	content := result.Contents[0]
	if content.URI != "daylog://month" {
		t.Errorf("URI = %q", content.URI)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(content.Text), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["title"] != "2024年 3月 統計報表" {
		t.Errorf("title = %v", data["title"])
	}
	if data["water_total"] != float64(750) {
		t.Errorf("water_total = %v", data["water_total"])
	}
	if data["exercise_days"] != float64(1) {
		t.Errorf("exercise_days = %v", data["exercise_days"])
	}
	if _, ok := data["report"].(map[string]interface{}); !ok {
		t.Errorf("report missing: %v", data["report"])
	}
}
