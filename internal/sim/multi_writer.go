package sim

import (
	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// MultiWriter fan-outs telemetry and daily rows to multiple writers.
type MultiWriter struct {
	writers []TelemetryWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...TelemetryWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a telemetry row to all writers.
func (mw *MultiWriter) Write(row telemetry.Row) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple telemetry rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(rows []telemetry.Row) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteDaily sends a daily aggregate row to every writer that accepts one.
func (mw *MultiWriter) WriteDaily(row telemetry.DailyRow) error {
	for _, w := range mw.writers {
		if dw, ok := w.(DailyWriter); ok {
			if err := dw.WriteDaily(row); err != nil {
				return err
			}
		}
	}
	return nil
}
