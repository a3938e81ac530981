package sim

import (
	"testing"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// singleWriter only implements the per-row interface, no batch support.
type singleWriter struct {
	rows []telemetry.Row
}

func (w *singleWriter) Write(row telemetry.Row) error {
	w.rows = append(w.rows, row)
	return nil
}

func TestMultiWriterFansOut(t *testing.T) {
	batching := &MockWriter{}
	single := &singleWriter{}
	mw := NewMultiWriter(batching, single)

	rows := []telemetry.Row{sampleRow(0, true), sampleRow(1, true)}
	if err := mw.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}

	if len(batching.Batches) != 1 || len(batching.Batches[0]) != 2 {
		t.Errorf("batch writer got %+v", batching.Batches)
	}
	if len(single.rows) != 2 {
		t.Errorf("single writer got %d rows, want 2", len(single.rows))
	}
}

func TestMultiWriterRoutesDaily(t *testing.T) {
	batching := &MockWriter{}
	single := &singleWriter{} // no daily support, must be skipped
	mw := NewMultiWriter(batching, single)

	if err := mw.WriteDaily(telemetry.DailyRow{RunID: "r1", Day: 2}); err != nil {
		t.Fatalf("WriteDaily: %v", err)
	}
	if len(batching.Daily) != 1 || batching.Daily[0].Day != 2 {
		t.Errorf("daily writer got %+v", batching.Daily)
	}
}
