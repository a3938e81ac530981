package sim

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// SQLiteWriter persists telemetry and daily aggregates to a local SQLite
// database, suitable for post-run analysis without a telemetry backend.
type SQLiteWriter struct {
	conn *sqlx.DB
}

// NewSQLiteWriter opens or creates a SQLite database at the given path.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	w := &SQLiteWriter{conn: conn}
	if err := w.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return w, nil
}

// Close closes the database connection.
func (w *SQLiteWriter) Close() error {
	return w.conn.Close()
}

func (w *SQLiteWriter) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS seal_telemetry (
		run_id TEXT NOT NULL,
		seal_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		state TEXT NOT NULL,
		energy REAL NOT NULL,
		stomach REAL NOT NULL,
		alive INTEGER NOT NULL,
		swh REAL NOT NULL,
		chl REAL NOT NULL,
		temp REAL NOT NULL,
		tide REAL NOT NULL,
		hsi REAL NOT NULL,
		ts TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seal_daily_stats (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		population INTEGER NOT NULL,
		foraging INTEGER NOT NULL,
		resting INTEGER NOT NULL,
		sleeping INTEGER NOT NULL,
		hauling_out INTEGER NOT NULL,
		transiting INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		mean_energy REAL NOT NULL,
		ts TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_telemetry_step ON seal_telemetry(run_id, step);
	CREATE INDEX IF NOT EXISTS idx_telemetry_seal ON seal_telemetry(seal_id);
	CREATE INDEX IF NOT EXISTS idx_daily_day ON seal_daily_stats(run_id, day);
	`
	_, err := w.conn.Exec(schema)
	return err
}

// Write inserts a single telemetry row.
func (w *SQLiteWriter) Write(row telemetry.Row) error {
	return w.WriteBatch([]telemetry.Row{row})
}

// WriteBatch inserts multiple telemetry rows in one transaction.
func (w *SQLiteWriter) WriteBatch(rows []telemetry.Row) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := w.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamed(`INSERT INTO seal_telemetry
		(run_id, seal_id, step, lat, lon, state, energy, stomach, alive,
		 swh, chl, temp, tide, hsi, ts)
		VALUES (:run_id, :seal_id, :step, :lat, :lon, :state, :energy, :stomach, :alive,
		 :swh, :chl, :temp, :tide, :hsi, :ts)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r); err != nil {
			return fmt.Errorf("insert telemetry: %w", err)
		}
	}
	return tx.Commit()
}

// WriteDaily inserts one daily aggregate row.
func (w *SQLiteWriter) WriteDaily(row telemetry.DailyRow) error {
	_, err := w.conn.NamedExec(`INSERT INTO seal_daily_stats
		(run_id, day, population, foraging, resting, sleeping, hauling_out,
		 transiting, deaths, mean_energy, ts)
		VALUES (:run_id, :day, :population, :foraging, :resting, :sleeping, :hauling_out,
		 :transiting, :deaths, :mean_energy, :ts)`, row)
	if err != nil {
		return fmt.Errorf("insert daily stats: %w", err)
	}
	return nil
}
