package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/config"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/logging"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/sim"
)

var (
	simPrintOnly  bool
	simTUI        bool
	simConfigPath string
	simSchemaPath string
	simLogFile    string
	simCSVDir     string
	simSQLitePath string
	simSeed       int64
	simWorkers    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the seal population simulator",
	Long:  "simulate advances a seal population over gridded ocean data and emits per-step telemetry plus daily aggregates.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = simSeed
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = simWorkers
		}

		runID := uuid.New().String()
		log := logging.ForRun(runID)
		ctx := logging.NewContext(cmd.Context(), log)

		writer, cleanup, err := newWriters(writerOptions{
			printOnly:  simPrintOnly,
			tui:        simTUI,
			logFile:    simLogFile,
			csvDir:     simCSVDir,
			sqlitePath: simSQLitePath,
			runID:      runID,
		})
		if err != nil {
			return err
		}
		defer cleanup()

		start, err := cfg.StartTime()
		if err != nil {
			return err
		}
		var datasets []*envgrid.Dataset
		for _, path := range cfg.Datasets {
			ds, err := envgrid.LoadDataset(path)
			if err != nil {
				return fmt.Errorf("dataset %s: %w", path, err)
			}
			datasets = append(datasets, ds)
		}
		buffer, err := envgrid.NewBuffer(datasets, start, cfg.TidalPeriodH)
		if err != nil {
			return err
		}

		daily, _ := writer.(sim.DailyWriter)
		simulator, err := sim.NewSimulator(runID, cfg, buffer, writer, daily)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return simulator.Run(ctx)
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print telemetry to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render a live terminal status board instead of STDOUT output")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export telemetry logs (JSONL)")
	simulateCmd.Flags().StringVar(&simCSVDir, "csv-dir", "", "Directory for CSV telemetry output")
	simulateCmd.Flags().StringVar(&simSQLitePath, "sqlite", "", "Path to a SQLite database for telemetry output")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Override the configured random seed")
	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "Override the configured worker count (0 = GOMAXPROCS)")
}
