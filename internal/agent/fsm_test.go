package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/config"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/habitat"
)

func testCfg() *config.SealConfig {
	cfg := config.DefaultSealConfig()
	return &cfg
}

// calm mid-tide open-water daytime condition, no transition triggers armed
func calmCond() Cond {
	return Cond{
		Tide:        0.5,
		WaveHeight:  0.5,
		IsDay:       true,
		Class:       envgrid.ClassWater,
		EnergyFrac:  0.5,
		StomachFrac: 0.3,
		Zone:        habitat.ZoneShallow,
	}
}

func TestDeadIsAbsorbing(t *testing.T) {
	cfg := testCfg()
	c := calmCond()
	c.Tide = 0.0
	c.WaveHeight = 10.0
	c.EnergyFrac = 1.0
	assert.Equal(t, StateDead, NextState(StateDead, c, cfg))
}

func TestStormAbortsLanding(t *testing.T) {
	cfg := testCfg()
	c := calmCond()
	c.WaveHeight = cfg.MaxLandingSwell + 0.1
	assert.Equal(t, StateResting, NextState(StateHaulingOut, c, cfg),
		"landing in extreme swell must be abandoned")
}

func TestStormForcesShelter(t *testing.T) {
	cfg := testCfg()
	c := calmCond()
	c.WaveHeight = cfg.StormThreshold + 0.1

	for _, cur := range []State{StateForaging, StateResting, StateTransiting} {
		assert.Equal(t, StateHaulingOut, NextState(cur, c, cfg), "from %s", cur)
	}

	// Already ashore: the storm does not flush a sleeping seal into the sea.
	ashore := c
	ashore.Class = envgrid.ClassLand
	assert.Equal(t, StateSleeping, NextState(StateSleeping, ashore, cfg))
}

func TestForagingTransitions(t *testing.T) {
	cfg := testCfg()

	full := calmCond()
	full.StomachFrac = 0.85
	assert.Equal(t, StateResting, NextState(StateForaging, full, cfg))

	// Fullness wins over an accessible cave.
	fullLowTide := full
	fullLowTide.Tide = 0.1
	assert.Equal(t, StateResting, NextState(StateForaging, fullLowTide, cfg))

	lowTide := calmCond()
	lowTide.Tide = 0.1
	assert.Equal(t, StateHaulingOut, NextState(StateForaging, lowTide, cfg))

	barren := calmCond()
	barren.ZeroIntakeHours = cfg.ZeroIntakePatience
	assert.Equal(t, StateTransiting, NextState(StateForaging, barren, cfg))

	assert.Equal(t, StateForaging, NextState(StateForaging, calmCond(), cfg))
}

func TestRestingTransitions(t *testing.T) {
	cfg := testCfg()

	lowTide := calmCond()
	lowTide.Tide = 0.1
	assert.Equal(t, StateHaulingOut, NextState(StateResting, lowTide, cfg))

	hungry := calmCond()
	hungry.StomachFrac = 0
	assert.Equal(t, StateForaging, NextState(StateResting, hungry, cfg))

	critical := calmCond()
	critical.EnergyFrac = cfg.CriticalThreshold - 0.01
	assert.Equal(t, StateForaging, NextState(StateResting, critical, cfg))

	rested := calmCond()
	rested.EnergyFrac = cfg.HighRestThreshold + 0.01
	assert.Equal(t, StateForaging, NextState(StateResting, rested, cfg))

	// At night with mid energy and food aboard the seal stays put.
	night := calmCond()
	night.IsDay = false
	night.StomachFrac = 0
	assert.Equal(t, StateResting, NextState(StateResting, night, cfg))
}

func TestSleepingWakeRuleIsDisjunctive(t *testing.T) {
	cfg := testCfg()

	base := calmCond()
	base.Class = envgrid.ClassLand
	base.IsDay = true

	// Flood evacuation overrides everything, day or night.
	flood := base
	flood.Tide = 0.9
	flood.IsDay = false
	flood.StomachFrac = 0.5
	assert.Equal(t, StateForaging, NextState(StateSleeping, flood, cfg))

	// Fully rested alone is enough to wake by day, even with food left.
	rested := base
	rested.EnergyFrac = 0.95
	rested.StomachFrac = 0.5
	assert.Equal(t, StateForaging, NextState(StateSleeping, rested, cfg))

	// An empty stomach alone is enough, even when not fully rested.
	empty := base
	empty.EnergyFrac = 0.6
	empty.StomachFrac = 0
	assert.Equal(t, StateForaging, NextState(StateSleeping, empty, cfg))

	// Neither trigger: sleep on.
	digesting := base
	digesting.EnergyFrac = 0.6
	digesting.StomachFrac = 0.5
	assert.Equal(t, StateSleeping, NextState(StateSleeping, digesting, cfg))

	// Washed off the land cell: resume landing, never sleep afloat.
	afloat := digesting
	afloat.Class = envgrid.ClassWater
	assert.Equal(t, StateHaulingOut, NextState(StateSleeping, afloat, cfg))
}

func TestHaulingOutRequiresTrueLand(t *testing.T) {
	cfg := testCfg()

	c := calmCond()
	c.Class = envgrid.ClassCoastline
	assert.Equal(t, StateHaulingOut, NextState(StateHaulingOut, c, cfg),
		"coastline cells are wet rock, not a haul-out site")

	c.Class = envgrid.ClassLand
	assert.Equal(t, StateSleeping, NextState(StateHaulingOut, c, cfg))
}

func TestTransitingTransitions(t *testing.T) {
	cfg := testCfg()

	c := calmCond()
	c.Zone = habitat.ZoneShallow
	assert.Equal(t, StateForaging, NextState(StateTransiting, c, cfg))

	c.Zone = habitat.ZoneMedium
	assert.Equal(t, StateForaging, NextState(StateTransiting, c, cfg))

	deep := calmCond()
	deep.Zone = habitat.ZoneDeep
	assert.Equal(t, StateTransiting, NextState(StateTransiting, deep, cfg))

	deepLowTide := deep
	deepLowTide.Tide = 0.1
	assert.Equal(t, StateHaulingOut, NextState(StateTransiting, deepLowTide, cfg))
}

// TestTransitionTableIsTotal sweeps the condition space across boundary
// values of every trigger and checks the table always yields a defined state.
func TestTransitionTableIsTotal(t *testing.T) {
	cfg := testCfg()
	states := []State{StateForaging, StateResting, StateSleeping, StateHaulingOut, StateTransiting, StateDead}
	defined := map[State]bool{}
	for _, s := range states {
		defined[s] = true
	}

	tides := []float64{0, cfg.LowTideThreshold, 0.5, cfg.HighTideThreshold, 1}
	swells := []float64{0, cfg.StormThreshold, cfg.MaxLandingSwell, cfg.MaxLandingSwell + 1}
	energies := []float64{0, cfg.CriticalThreshold, 0.5, cfg.HighRestThreshold, 1}
	stomachs := []float64{0, 0.5, cfg.FullnessThreshold, 1}
	classes := []envgrid.LandClass{envgrid.ClassWater, envgrid.ClassCoastline, envgrid.ClassLand}
	zones := []habitat.Zone{habitat.ZoneDry, habitat.ZoneShallow, habitat.ZoneMedium, habitat.ZoneDeep}

	for _, cur := range states {
		for _, tide := range tides {
			for _, swh := range swells {
				for _, e := range energies {
					for _, st := range stomachs {
						for _, cls := range classes {
							for _, zone := range zones {
								for _, day := range []bool{true, false} {
									c := Cond{
										Tide: tide, WaveHeight: swh, IsDay: day,
										Class: cls, EnergyFrac: e, StomachFrac: st,
										Zone: zone,
									}
									next := NextState(cur, c, cfg)
									if !defined[next] {
										t.Fatalf("undefined transition %s %+v -> %q", cur, c, next)
									}
									if cur == StateDead && next != StateDead {
										t.Fatalf("dead state escaped to %s under %+v", next, c)
									}
								}
							}
						}
					}
				}
			}
		}
	}
}
