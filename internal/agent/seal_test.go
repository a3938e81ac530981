package agent

import (
	"math"
	"strings"
	"testing"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/config"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
)

// voidEnv builds a step environment with no datasets: default variable
// values, an all-water domain, and a fixed tide phase.
func voidEnv(cfg *config.SealConfig, tide float64, isDay bool, step int) Env {
	rng, src := Stream(1, 0, step)
	return Env{
		Snap:  envgrid.Snapshot{TidePhase: tide, Fields: map[envgrid.Var]envgrid.Field{}},
		Cfg:   cfg,
		Rand:  rng,
		Src:   src,
		IsDay: isDay,
		DT:    1,
	}
}

func newTestSeal(cfg *config.SealConfig) *Seal {
	rng, _ := Stream(1, 0, -1)
	return New("test", 0, 1, 32.5, -16.5, cfg, rng)
}

func TestForagingNeverGainsEnergy(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateForaging

	before := s.Energy
	s.Step(voidEnv(cfg, 0.5, true, 0))

	want := before - cfg.RMR*cfg.AMRMultiplier
	if s.Energy != want {
		t.Errorf("energy after foraging step = %v, want %v (cost only)", s.Energy, want)
	}
	if s.Stomach <= 0 {
		t.Error("foraging should have filled the stomach")
	}
}

func TestIngestionFlooredByHSI(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateForaging

	// Void mode: default chlorophyll 0.05 is far under the 0.5 threshold,
	// so the floored HSI 0.5 applies to the shallow rate.
	s.Step(voidEnv(cfg, 0.5, true, 0))

	want := cfg.ShallowRate * cfg.HSIFloor * 1.0
	if math.Abs(s.Stomach-want) > 1e-9 {
		t.Errorf("stomach after one barren-water hour = %v, want %v", s.Stomach, want)
	}
}

func TestDigestionCapsAtMaxEnergy(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateResting
	s.Energy = cfg.MaxEnergy - 200
	s.Stomach = cfg.StomachCapacity

	s.Step(voidEnv(cfg, 0.5, false, 0))

	if s.Energy != cfg.MaxEnergy {
		t.Errorf("energy = %v, want capped at %v", s.Energy, cfg.MaxEnergy)
	}
	// Only the converted fraction leaves the stomach: the step cost plus
	// the 200 kJ of headroom.
	wantStomach := cfg.StomachCapacity - (cfg.RMR+200)/cfg.EnergyPerKgFood
	if math.Abs(s.Stomach-wantStomach) > 1e-9 {
		t.Errorf("stomach = %v, want %v", s.Stomach, wantStomach)
	}
}

func TestDigestionConservesMass(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateResting
	s.Energy = 50000
	s.Stomach = 5

	s.Step(voidEnv(cfg, 0.5, false, 0))

	// One hour digests DigestionRate kg into energy, minus the resting cost.
	wantEnergy := 50000.0 - cfg.RMR + cfg.DigestionRate*cfg.EnergyPerKgFood
	if math.Abs(s.Energy-wantEnergy) > 1e-9 {
		t.Errorf("energy = %v, want %v", s.Energy, wantEnergy)
	}
	if math.Abs(s.Stomach-4) > 1e-9 {
		t.Errorf("stomach = %v, want 4", s.Stomach)
	}
}

func TestStarvationBound(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateResting
	s.Stomach = 0

	// Resting at night burns RMR per hour; with 90000 kJ initial and a
	// 10000 kJ starvation line the seal survives exactly 160 hours.
	for h := 0; h < 160; h++ {
		s.Step(voidEnv(cfg, 0.5, false, h))
		if !s.Alive {
			t.Fatalf("starved prematurely at hour %d (energy %v)", h, s.Energy)
		}
		if s.State != StateResting {
			t.Fatalf("left resting at hour %d: %s", h, s.State)
		}
	}
	s.Step(voidEnv(cfg, 0.5, false, 160))
	if s.Alive {
		t.Fatalf("still alive past the starvation bound (energy %v)", s.Energy)
	}
	if s.Diagnostic != "starvation" {
		t.Errorf("diagnostic = %q, want starvation", s.Diagnostic)
	}
	if s.State != StateDead {
		t.Errorf("state = %s, want DEAD", s.State)
	}
}

func TestDeadSealIsNeverStepped(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.Kill("test")

	energy, lat, lon := s.Energy, s.Lat, s.Lon
	s.Step(voidEnv(cfg, 0.5, true, 0))

	if s.Energy != energy || s.Lat != lat || s.Lon != lon {
		t.Error("stepping a dead seal must be a no-op")
	}
}

func TestKillKeepsFirstDiagnostic(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.Kill("first")
	s.Kill("second")
	if s.Diagnostic != "first" {
		t.Errorf("diagnostic = %q, want first", s.Diagnostic)
	}
}

func TestNumericalFaultKillsAgent(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateResting
	s.Energy = math.NaN()

	s.Step(voidEnv(cfg, 0.5, false, 0))

	if s.Alive {
		t.Fatal("NaN energy must kill the agent")
	}
	if !strings.Contains(s.Diagnostic, "numerical") {
		t.Errorf("diagnostic = %q, want a numerical fault", s.Diagnostic)
	}
}

func TestZeroIntakeTriggersRelocation(t *testing.T) {
	cfg := testCfg()
	cfg.ShallowRate = 0 // barren water yields nothing
	s := newTestSeal(cfg)
	s.State = StateForaging

	for h := 0; h < cfg.ZeroIntakePatience; h++ {
		if s.State != StateForaging {
			t.Fatalf("left foraging early at hour %d: %s", h, s.State)
		}
		s.Step(voidEnv(cfg, 0.5, true, h))
	}
	if s.State != StateTransiting {
		t.Fatalf("state = %s, want TRANSITING after %d empty hours", s.State, cfg.ZeroIntakePatience)
	}
}

func TestMovementStaysFiniteAndBounded(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateForaging

	for h := 0; h < 48; h++ {
		lat, lon := s.Lat, s.Lon
		s.Step(voidEnv(cfg, 0.5, true, h))
		if math.IsNaN(s.Lat) || math.IsNaN(s.Lon) {
			t.Fatal("position went NaN")
		}
		d := math.Hypot(s.Lat-lat, s.Lon-lon)
		if d > cfg.SwimSpeed+1e-9 {
			t.Fatalf("moved %v degrees in one hour, max %v", d, cfg.SwimSpeed)
		}
	}
}

func TestAging(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateResting
	s.Energy = cfg.MaxEnergy
	s.Stomach = cfg.StomachCapacity
	age := s.AgeYears

	s.AgeHours = 24*365 - 1
	s.Step(voidEnv(cfg, 0.5, false, 0))

	if s.AgeYears != age+1 {
		t.Errorf("age = %d, want %d after a simulated year", s.AgeYears, age+1)
	}
}

func TestAgingCrossesYearBoundaryMidStep(t *testing.T) {
	cfg := testCfg()
	s := newTestSeal(cfg)
	s.State = StateResting
	s.Energy = cfg.MaxEnergy
	age := s.AgeYears

	// A 7 hour step jumps over the exact year multiple without landing on it.
	s.AgeHours = 24*365 - 3
	env := voidEnv(cfg, 0.5, false, 0)
	env.DT = 7
	s.Step(env)

	if s.AgeYears != age+1 {
		t.Errorf("age = %d, want %d after crossing a year boundary", s.AgeYears, age+1)
	}
}

func TestSealIDDerivedFromSeed(t *testing.T) {
	cfg := testCfg()
	rng, _ := Stream(1, 0, -1)
	a := New("desertas", 3, 42, 32.5, -16.5, cfg, rng)
	b := New("desertas", 3, 42, 32.5, -16.5, cfg, rng)
	c := New("desertas", 3, 7, 32.5, -16.5, cfg, rng)
	d := New("desertas", 4, 42, 32.5, -16.5, cfg, rng)

	if a.ID != b.ID {
		t.Errorf("same seed and index produced different IDs: %s vs %s", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Error("different seeds must produce different IDs")
	}
	if a.ID == d.ID {
		t.Error("different indices must produce different IDs")
	}
}

// oceanWithIsland builds a wide water grid with a single land cell in the
// south-west corner, leaving plenty of open water beyond the island boundary.
func oceanWithIsland() envgrid.LandGrid {
	const n = 21
	g := envgrid.LandGrid{
		Rows: n, Cols: n,
		LatMin: 32.0, LatStep: 0.1,
		LonMin: -17.0, LonStep: 0.1,
		Class: make([]envgrid.LandClass, n*n),
		Depth: make([]float64, n*n),
	}
	for i := range g.Class {
		g.Class[i] = envgrid.ClassWater
		g.Depth[i] = 30.0
	}
	g.Class[0] = envgrid.ClassLand
	g.Depth[0] = math.NaN()
	return g
}

func TestTransitingRedirectedBeyondBoundary(t *testing.T) {
	cfg := testCfg()
	g := oceanWithIsland()
	landLat, landLon := g.CellCenter(0, 0)

	s := newTestSeal(cfg)
	s.State = StateTransiting
	s.Lat, s.Lon = 32.65, -16.35
	s.DistToLand = math.Hypot(s.Lat-landLat, s.Lon-landLon)
	if s.DistToLand <= cfg.IslandBoundary {
		t.Fatalf("fixture seal is inside the boundary: %v", s.DistToLand)
	}

	env := voidEnv(cfg, 0.5, true, 0)
	env.Snap.Land = g
	s.updateIntent(env, cfg.SwimSpeed*env.DT)

	if s.Intent != IntentSeekLand {
		t.Fatalf("intent = %v, want forced land seek beyond the boundary", s.Intent)
	}
	if s.TargetLat != landLat || s.TargetLon != landLon {
		t.Errorf("target = (%v,%v), want the land cell (%v,%v)",
			s.TargetLat, s.TargetLon, landLat, landLon)
	}

	// The step itself must close on land rather than drift seaward.
	before := s.DistToLand
	s.move(env)
	after := math.Hypot(s.Lat-landLat, s.Lon-landLon)
	if after >= before {
		t.Errorf("distance to land grew from %v to %v", before, after)
	}
}
