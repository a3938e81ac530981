// Telemetry row types shared by all output writers.
package telemetry

import (
	"os"
	"time"
)

// Row is one immutable (agent, timestep) telemetry record.
// A row is appended once and never mutated afterwards.
type Row struct {
	RunID       string    `json:"run_id" csv:"run_id" db:"run_id"`             // TAG
	SealID      string    `json:"seal_id" csv:"seal_id" db:"seal_id"`          // TAG
	Step        int       `json:"step" csv:"step" db:"step"`                   // FIELD
	Lat         float64   `json:"lat" csv:"lat" db:"lat"`                      // FIELD
	Lon         float64   `json:"lon" csv:"lon" db:"lon"`                      // FIELD
	State       string    `json:"state" csv:"state" db:"state"`                // FIELD
	Energy      float64   `json:"energy" csv:"energy" db:"energy"`             // FIELD
	Stomach     float64   `json:"stomach" csv:"stomach" db:"stomach"`          // FIELD
	Alive       bool      `json:"alive" csv:"alive" db:"alive"`                // FIELD
	WaveHeight  float64   `json:"swh" csv:"swh" db:"swh"`                      // FIELD
	Chlorophyll float64   `json:"chl" csv:"chl" db:"chl"`                      // FIELD
	Temperature float64   `json:"temp" csv:"temp" db:"temp"`                   // FIELD
	TidePhase   float64   `json:"tide" csv:"tide" db:"tide"`                   // FIELD
	HSI         float64   `json:"hsi" csv:"hsi" db:"hsi"`                      // FIELD
	Timestamp   time.Time `json:"ts" csv:"ts" db:"ts"`                         // TIME INDEX
}

// RowTableName holds the table name used when writing rows to GreptimeDB.
// It defaults to "seal_telemetry" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var RowTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "seal_telemetry"
}()

func (Row) TableName() string {
	return RowTableName
}

// DailyRow aggregates the population once per simulated day.
type DailyRow struct {
	RunID      string    `json:"run_id" csv:"run_id" db:"run_id"`
	Day        int       `json:"day" csv:"day" db:"day"`
	Population int       `json:"population" csv:"population" db:"population"`
	Foraging   int       `json:"foraging" csv:"foraging" db:"foraging"`
	Resting    int       `json:"resting" csv:"resting" db:"resting"`
	Sleeping   int       `json:"sleeping" csv:"sleeping" db:"sleeping"`
	HaulingOut int       `json:"hauling_out" csv:"hauling_out" db:"hauling_out"`
	Transiting int       `json:"transiting" csv:"transiting" db:"transiting"`
	Deaths     int       `json:"deaths" csv:"deaths" db:"deaths"`
	MeanEnergy float64   `json:"mean_energy" csv:"mean_energy" db:"mean_energy"`
	Timestamp  time.Time `json:"ts" csv:"ts" db:"ts"`
}

// DailyTableName is the GreptimeDB table for daily aggregates.
var DailyTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_DAILY_TABLE"); env != "" {
		return env
	}
	return "seal_daily_stats"
}()

func (DailyRow) TableName() string {
	return DailyTableName
}
