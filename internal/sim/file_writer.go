package sim

import (
	"encoding/json"
	"os"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// FileWriter writes telemetry and daily aggregates to JSONL files.
type FileWriter struct {
	teleFile  *os.File
	dailyFile *os.File
	teleEnc   *json.Encoder
	dailyEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. dailyPath may be empty to skip the
// daily aggregate log.
func NewFileWriter(telemetryPath, dailyPath string) (*FileWriter, error) {
	tf, err := os.Create(telemetryPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{teleFile: tf, teleEnc: json.NewEncoder(tf)}
	if dailyPath != "" {
		df, err := os.Create(dailyPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.dailyFile = df
		fw.dailyEnc = json.NewEncoder(df)
	}
	return fw, nil
}

// Write logs a single telemetry row.
func (f *FileWriter) Write(row telemetry.Row) error {
	return f.teleEnc.Encode(row)
}

// WriteBatch logs multiple telemetry rows.
func (f *FileWriter) WriteBatch(rows []telemetry.Row) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteDaily logs a daily aggregate row, if enabled.
func (f *FileWriter) WriteDaily(row telemetry.DailyRow) error {
	if f.dailyEnc == nil {
		return nil
	}
	return f.dailyEnc.Encode(row)
}

// Close closes the underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.dailyFile != nil {
		err = f.dailyFile.Close()
	}
	if cerr := f.teleFile.Close(); cerr != nil {
		err = cerr
	}
	return err
}

// ReadRows loads telemetry rows back from a JSONL file, in file order.
// Used by the replay command.
func ReadRows(path string) ([]telemetry.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []telemetry.Row
	dec := json.NewDecoder(file)
	for dec.More() {
		var r telemetry.Row
		if err := dec.Decode(&r); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}
