package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/pomato/internal/store"
)

func sampleSessions() []store.SessionRecord {
	now := time.Now().UTC()
	return []store.SessionRecord{
		{
			ID:          1,
			TaskID:      "t1",
			TaskText:    "write the report",
			Minutes:     25,
			Points:      25,
			LongBreak:   false,
			CompletedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:          2,
			TaskID:      "t2",
			TaskText:    "review pull requests",
			Minutes:     25,
			Points:      50,
			LongBreak:   true,
			CompletedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:          3,
			Minutes:     25,
			Points:      25,
			CompletedAt: now,
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	sessions := sampleSessions()
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(sessions, path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	// Check header
	header := records[0]
	expectedHeader := []string{"ID", "Task", "Minutes", "Points", "Long Break", "Completed At"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	// Check first data row
	row := records[1]
	if row[0] != "1" {
		t.Fatalf("ID = %q, want 1", row[0])
	}
	if row[1] != "write the report" {
		t.Fatalf("Task = %q, want 'write the report'", row[1])
	}
	if row[2] != "25" {
		t.Fatalf("Minutes = %q, want 25", row[2])
	}
	if row[4] != "no" {
		t.Fatalf("Long Break = %q, want no", row[4])
	}

	// Long break row
	if records[2][4] != "yes" {
		t.Fatalf("Long Break = %q, want yes", records[2][4])
	}

	// Taskless session gets a placeholder
	if records[3][1] != "(no task)" {
		t.Fatalf("expected '(no task)' placeholder, got %q", records[3][1])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := ToCSV(nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	sessions := []store.SessionRecord{
		{
			ID:          1,
			TaskText:    `task with "quotes" and, commas`,
			Minutes:     25,
			Points:      25,
			CompletedAt: time.Now(),
		},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	err := ToCSV(sessions, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][1] != `task with "quotes" and, commas` {
		t.Fatalf("task text mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	sessions := sampleSessions()
	path := filepath.Join(t.TempDir(), "test.json")

	err := ToJSON(sessions, path)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 {
		t.Fatalf("count = %d, want 3", result.Count)
	}
	if len(result.Sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(result.Sessions))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	// Check first session
	s := result.Sessions[0]
	if s.ID != 1 {
		t.Fatalf("ID = %d, want 1", s.ID)
	}
	if s.Task != "write the report" {
		t.Fatalf("Task = %q", s.Task)
	}
	if s.Points != 25 {
		t.Fatalf("Points = %d, want 25", s.Points)
	}
	if !result.Sessions[1].LongBreak {
		t.Fatal("second session should be a long break")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	err := ToJSON(nil, path)
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Sessions != nil {
		t.Fatal("sessions should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, path)

	data, _ := os.ReadFile(path)
	// Pretty-printed JSON should contain newlines and indentation
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	sessions := sampleSessions()
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(sessions, path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	// exported_at should be valid RFC3339
	_, err := time.Parse(time.RFC3339, result.ExportedAt)
	if err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	for _, s := range result.Sessions {
		if _, err := time.Parse(time.RFC3339, s.CompletedAt); err != nil {
			t.Fatalf("completed_at is not valid RFC3339: %q", s.CompletedAt)
		}
	}
}
