package sim

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/agent"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/telemetry"
)

// AggregateDaily reduces the live population to one daily statistics row.
// It runs strictly after the per-agent phase, so it never races agent state.
func AggregateDaily(runID string, day int, now time.Time, seals []*agent.Seal, deaths int) telemetry.DailyRow {
	row := telemetry.DailyRow{
		RunID:      runID,
		Day:        day,
		Population: len(seals),
		Deaths:     deaths,
		Timestamp:  now,
	}
	energies := make([]float64, 0, len(seals))
	for _, s := range seals {
		energies = append(energies, s.Energy)
		switch s.State {
		case agent.StateForaging:
			row.Foraging++
		case agent.StateResting:
			row.Resting++
		case agent.StateSleeping:
			row.Sleeping++
		case agent.StateHaulingOut:
			row.HaulingOut++
		case agent.StateTransiting:
			row.Transiting++
		}
	}
	if len(energies) > 0 {
		row.MeanEnergy = stat.Mean(energies, nil)
	}
	return row
}

// AggregateRows recomputes daily statistics from recorded telemetry, used by
// the replay command. Rows must be in step order; the aggregate for a day is
// taken from the last step of that day.
func AggregateRows(runID string, stepHours int, rows []telemetry.Row) []telemetry.DailyRow {
	if len(rows) == 0 || stepHours < 1 {
		return nil
	}
	stepsPerDay := 24 / stepHours
	if stepsPerDay < 1 {
		stepsPerDay = 1
	}

	byDay := map[int]map[string]telemetry.Row{}
	deaths := map[int]int{}
	for _, r := range rows {
		day := r.Step / stepsPerDay
		if byDay[day] == nil {
			byDay[day] = map[string]telemetry.Row{}
		}
		byDay[day][r.SealID] = r
		if !r.Alive {
			deaths[day]++
		}
	}

	maxDay := 0
	for d := range byDay {
		if d > maxDay {
			maxDay = d
		}
	}

	var out []telemetry.DailyRow
	for d := 0; d <= maxDay; d++ {
		latest, ok := byDay[d]
		if !ok {
			continue
		}
		row := telemetry.DailyRow{RunID: runID, Day: d, Deaths: deaths[d]}
		var energies []float64
		for _, r := range latest {
			if !r.Alive {
				continue
			}
			row.Population++
			energies = append(energies, r.Energy)
			if row.Timestamp.Before(r.Timestamp) {
				row.Timestamp = r.Timestamp
			}
			switch agent.State(r.State) {
			case agent.StateForaging:
				row.Foraging++
			case agent.StateResting:
				row.Resting++
			case agent.StateSleeping:
				row.Sleeping++
			case agent.StateHaulingOut:
				row.HaulingOut++
			case agent.StateTransiting:
				row.Transiting++
			}
		}
		if len(energies) > 0 {
			row.MeanEnergy = stat.Mean(energies, nil)
		}
		out = append(out, row)
	}
	return out
}
