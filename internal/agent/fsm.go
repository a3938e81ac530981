package agent

import (
	"github.com/alex-kolmakov/monk-seal-modelling/internal/config"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/habitat"
)

// Cond is the full set of triggering conditions the transition table reads.
type Cond struct {
	Tide            float64
	WaveHeight      float64
	IsDay           bool
	Class           envgrid.LandClass
	EnergyFrac      float64
	StomachFrac     float64
	Zone            habitat.Zone
	ZeroIntakeHours int
}

// NextState is the static transition table (state x condition -> next state).
// It is a total function: every reachable condition combination produces a
// defined result, so no state can silently fall through without an exit.
//
// The wake rule for SLEEPING is deliberately disjunctive: high tide forces
// evacuation regardless of energy or hunger, and by day either a full energy
// store or an empty stomach is enough to leave. A conjunctive rule ("rested
// AND empty") deadlocks an agent that digests to the energy cap while its
// rest fraction sits just under the threshold.
func NextState(cur State, c Cond, cfg *config.SealConfig) State {
	if cur == StateDead {
		return StateDead
	}
	onLand := c.Class == envgrid.ClassLand

	// Storm rules override the regular cycle.
	if c.WaveHeight > cfg.MaxLandingSwell && cur == StateHaulingOut {
		return StateResting // landing unsafe, ride it out at sea
	}
	if c.WaveHeight > cfg.StormThreshold && !onLand {
		switch cur {
		case StateForaging, StateResting, StateTransiting:
			return StateHaulingOut
		}
	}

	caveAccessible := c.Tide < cfg.LowTideThreshold && c.WaveHeight < cfg.StormThreshold

	switch cur {
	case StateForaging:
		if c.StomachFrac > cfg.FullnessThreshold {
			return StateResting
		}
		if caveAccessible {
			return StateHaulingOut
		}
		if c.ZeroIntakeHours >= cfg.ZeroIntakePatience {
			return StateTransiting
		}
		return StateForaging

	case StateResting:
		if caveAccessible {
			return StateHaulingOut
		}
		if c.IsDay && (c.EnergyFrac < cfg.CriticalThreshold ||
			c.StomachFrac == 0 || c.EnergyFrac > cfg.HighRestThreshold) {
			return StateForaging
		}
		return StateResting

	case StateSleeping:
		if !onLand {
			// Never asleep in open water; resume the landing.
			return StateHaulingOut
		}
		if c.Tide > cfg.HighTideThreshold {
			return StateForaging // cave floods, forced evacuation
		}
		if c.IsDay && (c.EnergyFrac > cfg.HighRestThreshold ||
			c.StomachFrac == 0 || c.EnergyFrac < cfg.CriticalThreshold) {
			return StateForaging
		}
		return StateSleeping

	case StateHaulingOut:
		if onLand {
			// Coastline does not count: the agent keeps moving until it
			// reaches a true land cell.
			return StateSleeping
		}
		return StateHaulingOut

	case StateTransiting:
		if c.Zone == habitat.ZoneShallow || c.Zone == habitat.ZoneMedium {
			return StateForaging
		}
		if caveAccessible {
			return StateHaulingOut
		}
		return StateTransiting
	}
	return cur
}
