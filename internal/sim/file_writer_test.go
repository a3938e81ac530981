package sim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

func sampleRow(step int, alive bool) telemetry.Row {
	return telemetry.Row{
		RunID:       "r1",
		SealID:      "desertas-0-test",
		Step:        step,
		Lat:         32.5,
		Lon:         -16.5,
		State:       "FORAGING",
		Energy:      88000,
		Stomach:     1.5,
		Alive:       alive,
		WaveHeight:  0.8,
		Chlorophyll: 0.4,
		Temperature: 19.2,
		TidePhase:   0.5,
		HSI:         0.8,
		Timestamp:   time.Unix(0, 0).UTC().Add(time.Duration(step) * time.Hour),
	}
}

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	telePath := filepath.Join(dir, "telemetry.jsonl")
	dailyPath := filepath.Join(dir, "daily.jsonl")

	fw, err := NewFileWriter(telePath, dailyPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}

	row := sampleRow(3, true)
	if err := fw.WriteBatch([]telemetry.Row{row}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	daily := telemetry.DailyRow{RunID: "r1", Day: 1, Population: 5, MeanEnergy: 80000, Timestamp: time.Unix(0, 0).UTC()}
	if err := fw.WriteDaily(daily); err != nil {
		t.Fatalf("WriteDaily: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(telePath)
	if err != nil {
		t.Fatal(err)
	}
	var got telemetry.Row
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode telemetry: %v", err)
	}
	if got != row {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, row)
	}

	data, err = os.ReadFile(dailyPath)
	if err != nil {
		t.Fatal(err)
	}
	var gotDaily telemetry.DailyRow
	if err := json.Unmarshal(data, &gotDaily); err != nil {
		t.Fatalf("decode daily: %v", err)
	}
	if gotDaily != daily {
		t.Fatalf("daily round trip mismatch: %+v", gotDaily)
	}
}

func TestFileWriterSkipsDailyWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(filepath.Join(dir, "telemetry.jsonl"), "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()
	if err := fw.WriteDaily(telemetry.DailyRow{}); err != nil {
		t.Errorf("disabled daily log should be a no-op, got %v", err)
	}
}

func TestReadRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "telemetry.jsonl")

	fw, err := NewFileWriter(path, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []telemetry.Row{sampleRow(0, true), sampleRow(1, true), sampleRow(2, false)}
	if err := fw.WriteBatch(want); err != nil {
		t.Fatal(err)
	}
	fw.Close()

	got, err := ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d mismatch: %+v", i, got[i])
		}
	}
}
