package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// CSVWriter writes telemetry and daily aggregates to CSV files in a
// directory, one file per record kind.
type CSVWriter struct {
	dir       string
	teleFile  *os.File
	dailyFile *os.File

	// Track if headers have been written
	teleHeaderWritten  bool
	dailyHeaderWritten bool
}

// NewCSVWriter creates a CSVWriter and initializes the output directory.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	w := &CSVWriter{dir: dir}

	tf, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	w.teleFile = tf

	df, err := os.Create(filepath.Join(dir, "daily_stats.csv"))
	if err != nil {
		tf.Close()
		return nil, fmt.Errorf("creating daily_stats.csv: %w", err)
	}
	w.dailyFile = df

	return w, nil
}

// Write appends a single telemetry row to telemetry.csv.
func (w *CSVWriter) Write(row telemetry.Row) error {
	return w.WriteBatch([]telemetry.Row{row})
}

// WriteBatch appends multiple telemetry rows to telemetry.csv.
func (w *CSVWriter) WriteBatch(rows []telemetry.Row) error {
	if len(rows) == 0 {
		return nil
	}
	if !w.teleHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(rows, w.teleFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.teleHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, w.teleFile); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteDaily appends a daily aggregate row to daily_stats.csv.
func (w *CSVWriter) WriteDaily(row telemetry.DailyRow) error {
	records := []telemetry.DailyRow{row}
	if !w.dailyHeaderWritten {
		if err := gocsv.Marshal(records, w.dailyFile); err != nil {
			return fmt.Errorf("writing daily stats: %w", err)
		}
		w.dailyHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.dailyFile); err != nil {
		return fmt.Errorf("writing daily stats: %w", err)
	}
	return nil
}

// Close closes the underlying files.
func (w *CSVWriter) Close() error {
	err := w.teleFile.Close()
	if cerr := w.dailyFile.Close(); cerr != nil {
		err = cerr
	}
	return err
}
