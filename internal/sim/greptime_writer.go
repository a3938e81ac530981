package sim

import (
	"context"
	"fmt"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes telemetry to GreptimeDB via the ingester client.
// Tables are auto-created by the database on first write.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
	daily  string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	return &GreptimeDBWriter{
		client: client,
		table:  telemetry.RowTableName,
		daily:  telemetry.DailyTableName,
	}, nil
}

// Write inserts a single telemetry row.
func (w *GreptimeDBWriter) Write(row telemetry.Row) error {
	return w.WriteBatch([]telemetry.Row{row})
}

// WriteBatch inserts multiple telemetry rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.Row) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := telemetryTable(w.table, rows)
	if err != nil {
		return err
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		return fmt.Errorf("greptime write: %w", err)
	}
	return nil
}

// WriteDaily inserts one daily aggregate row.
func (w *GreptimeDBWriter) WriteDaily(row telemetry.DailyRow) error {
	tbl, err := dailyTable(w.daily, row)
	if err != nil {
		return err
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		return fmt.Errorf("greptime daily write: %w", err)
	}
	return nil
}

func telemetryTable(name string, rows []telemetry.Row) (*table.Table, error) {
	tbl, err := table.New(name)
	if err != nil {
		return nil, err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("seal_id", types.STRING)
	tbl.AddFieldColumn("step", types.INT64)
	tbl.AddFieldColumn("lat", types.FLOAT64)
	tbl.AddFieldColumn("lon", types.FLOAT64)
	tbl.AddFieldColumn("state", types.STRING)
	tbl.AddFieldColumn("energy", types.FLOAT64)
	tbl.AddFieldColumn("stomach", types.FLOAT64)
	tbl.AddFieldColumn("alive", types.BOOLEAN)
	tbl.AddFieldColumn("swh", types.FLOAT64)
	tbl.AddFieldColumn("chl", types.FLOAT64)
	tbl.AddFieldColumn("temp", types.FLOAT64)
	tbl.AddFieldColumn("tide", types.FLOAT64)
	tbl.AddFieldColumn("hsi", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.RunID, r.SealID, int64(r.Step), r.Lat, r.Lon,
			r.State, r.Energy, r.Stomach, r.Alive, r.WaveHeight, r.Chlorophyll,
			r.Temperature, r.TidePhase, r.HSI, r.Timestamp); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func dailyTable(name string, row telemetry.DailyRow) (*table.Table, error) {
	tbl, err := table.New(name)
	if err != nil {
		return nil, err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddFieldColumn("day", types.INT64)
	tbl.AddFieldColumn("population", types.INT64)
	tbl.AddFieldColumn("foraging", types.INT64)
	tbl.AddFieldColumn("resting", types.INT64)
	tbl.AddFieldColumn("sleeping", types.INT64)
	tbl.AddFieldColumn("hauling_out", types.INT64)
	tbl.AddFieldColumn("transiting", types.INT64)
	tbl.AddFieldColumn("deaths", types.INT64)
	tbl.AddFieldColumn("mean_energy", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(row.RunID, int64(row.Day), int64(row.Population),
		int64(row.Foraging), int64(row.Resting), int64(row.Sleeping),
		int64(row.HaulingOut), int64(row.Transiting), int64(row.Deaths),
		row.MeanEnergy, row.Timestamp); err != nil {
		return nil, err
	}
	return tbl, nil
}
