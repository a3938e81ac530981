package main

import (
	"os"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/sim"
)

// writerOptions collects the output-related flags of the simulate command.
type writerOptions struct {
	printOnly  bool
	tui        bool
	logFile    string
	csvDir     string
	sqlitePath string
	runID      string
}

// newWriters sets up the telemetry writer chain based on flags and env vars.
// It returns the writer and a cleanup function to close any resources.
func newWriters(opts writerOptions) (sim.TelemetryWriter, func(), error) {
	var writers []sim.TelemetryWriter
	var closers []func()

	base, err := baseWriter(opts)
	if err != nil {
		return nil, nil, err
	}
	writers = append(writers, base)
	if c, ok := base.(interface{ Close() }); ok {
		closers = append(closers, c.Close)
	}

	if opts.logFile != "" {
		fw, err := sim.NewFileWriter(opts.logFile, opts.logFile+".daily")
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, fw)
		closers = append(closers, func() { fw.Close() })
	}
	if opts.csvDir != "" {
		cw, err := sim.NewCSVWriter(opts.csvDir)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, cw)
		closers = append(closers, func() { cw.Close() })
	}
	if opts.sqlitePath != "" {
		sw, err := sim.NewSQLiteWriter(opts.sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, sw)
		closers = append(closers, func() { sw.Close() })
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	if len(writers) == 1 {
		return writers[0], cleanup, nil
	}
	return sim.NewMultiWriter(writers...), cleanup, nil
}

// baseWriter chooses the primary output: TUI, GreptimeDB, or STDOUT.
func baseWriter(opts writerOptions) (sim.TelemetryWriter, error) {
	if opts.tui {
		return sim.NewTUIWriter(opts.runID), nil
	}
	if opts.printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		return sim.NewJSONStdoutWriter(), nil
	}
	return sim.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), "public")
}
