package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

func TestCSVWriterWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVWriter(dir)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	if err := w.WriteBatch([]telemetry.Row{sampleRow(0, true)}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if err := w.WriteBatch([]telemetry.Row{sampleRow(1, true), sampleRow(2, true)}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "run_id,seal_id,step") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if strings.HasPrefix(lines[2], "run_id") {
		t.Error("header repeated on second batch")
	}
}

func TestCSVWriterDailyFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVWriter(dir)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.WriteDaily(telemetry.DailyRow{RunID: "r1", Day: 0, Population: 8}); err != nil {
		t.Fatalf("WriteDaily: %v", err)
	}
	if err := w.WriteDaily(telemetry.DailyRow{RunID: "r1", Day: 1, Population: 7}); err != nil {
		t.Fatalf("WriteDaily: %v", err)
	}
	w.Close()

	data, err := os.ReadFile(filepath.Join(dir, "daily_stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
}
