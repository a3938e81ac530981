package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// JSONStdoutWriter prints telemetry and daily aggregates as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// Write outputs a telemetry row in JSON format.
func (w *JSONStdoutWriter) Write(row telemetry.Row) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteBatch outputs multiple telemetry rows in JSON format.
func (w *JSONStdoutWriter) WriteBatch(rows []telemetry.Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteDaily outputs a daily aggregate row in JSON format.
func (w *JSONStdoutWriter) WriteDaily(row telemetry.DailyRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}
