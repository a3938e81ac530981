package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/sim"
)

var (
	replayInput     string
	replayStepHours int
	replayRunID     string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Recompute daily aggregates from a telemetry log",
	Long:  "replay reads JSONL telemetry rows and prints the daily population statistics they imply.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		rows, err := sim.ReadRows(replayInput)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no telemetry rows in %s", replayInput)
		}
		runID := replayRunID
		if runID == "" {
			runID = rows[0].RunID
		}
		writer := sim.NewJSONStdoutWriter()
		for _, daily := range sim.AggregateRows(runID, replayStepHours, rows) {
			if err := writer.WriteDaily(daily); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to JSONL telemetry log file")
	replayCmd.Flags().IntVar(&replayStepHours, "step-hours", 1, "Timestep size the log was recorded with")
	replayCmd.Flags().StringVar(&replayRunID, "run-id", "", "Run ID to stamp on the aggregates (default: from the log)")
	replayCmd.MarkFlagRequired("input")
}
