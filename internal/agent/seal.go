// Package agent implements the per-individual seal model: a finite-state
// behavioral cycle driven by environment snapshots, with energy accounting
// where digestion is the only path by which energy increases.
package agent

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/config"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/habitat"
)

// State is the discrete behavioral state of a seal.
type State string

const (
	StateForaging   State = "FORAGING"
	StateResting    State = "RESTING"     // short naps, sea or land
	StateSleeping   State = "SLEEPING"    // deep sleep, strictly land
	StateHaulingOut State = "HAULING_OUT" // transiting to land
	StateTransiting State = "TRANSITING"  // relocating to a better patch
	// StateDead is the terminal absorbing state outside the active cycle.
	StateDead State = "DEAD"
)

// Active reports whether the state burns energy at the active rate.
func (s State) Active() bool {
	return s == StateForaging || s == StateTransiting || s == StateHaulingOut
}

// Moves reports whether the state changes position each step.
func (s State) Moves() bool {
	return s == StateForaging || s == StateTransiting || s == StateHaulingOut
}

// Intent is an optional multi-step movement goal overriding the random walk.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentSeekLand
	IntentSeekPatch
)

const (
	hoursPerYear = 24 * 365
	// Cached distance-to-land is refreshed at most this often.
	landCacheHours = 6
	// Fixed sampling resolution for the path-interior land test, degrees.
	pathSampleResolution = 0.005
)

// Seal is the mutable per-individual record. All updates happen through Step;
// a dead seal is never stepped again.
type Seal struct {
	ID    string
	Index int // stable identity used for RNG stream derivation

	Lat     float64
	Lon     float64
	Heading float64 // radians, for movement persistence

	Energy  float64 // kJ, in [0, MaxEnergy]
	Stomach float64 // kg, in [0, StomachCapacity]

	State      State
	Alive      bool
	Diagnostic string // death cause, empty while alive

	AgeYears int
	AgeHours int

	Intent    Intent
	TargetLat float64
	TargetLon float64

	// DistToLand caches the degree distance to the nearest true land cell.
	DistToLand      float64
	distLandAge     int
	ZeroIntakeHours int
}

// Env is the read-only context for one Step call. Rand and Src must come
// from Stream for the same (agent, step) pair.
type Env struct {
	Snap  envgrid.Snapshot
	Cfg   *config.SealConfig
	Rand  *rand.Rand
	Src   rand.Source
	IsDay bool
	DT    float64 // hours per step
}

// New creates a live seal at the given position. The ID is derived from the
// run seed and the agent index, and the heading from the provided stream, so
// two runs with the same seed emit identical telemetry tables.
func New(colony string, index int, seed int64, lat, lon float64, cfg *config.SealConfig, rng *rand.Rand) *Seal {
	id := uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "seal-%d-%d", seed, index))
	return &Seal{
		ID:          fmt.Sprintf("%s-%d-%s", colony, index, id),
		Index:       index,
		Lat:         lat,
		Lon:         lon,
		Heading:     rng.Float64() * 2 * math.Pi,
		Energy:      cfg.InitialEnergy,
		State:       StateForaging,
		Alive:       true,
		AgeYears:    1 + rng.IntN(19),
		distLandAge: landCacheHours, // force a refresh on the first step
		DistToLand:  math.Inf(1),
	}
}

// Step advances the seal by one timestep against an immutable snapshot.
// Order is fixed: metabolic cost, ingestion, digestion, movement, state
// transition, death check. The cost is unconditional and applied before any
// gain; digestion is the only path that adds energy.
func (s *Seal) Step(env Env) {
	if !s.Alive {
		return
	}
	cfg := env.Cfg

	years := s.AgeHours / hoursPerYear
	s.AgeHours += int(env.DT)
	if s.AgeHours/hoursPerYear > years {
		s.AgeYears++
	}
	s.refreshDistToLand(env)

	cost := cfg.RMR * env.DT
	if s.State.Active() {
		cost *= cfg.AMRMultiplier
	}
	s.Energy -= cost

	switch s.State {
	case StateForaging:
		s.ingest(env)
	case StateResting, StateSleeping:
		s.digest(env)
	}

	if s.State.Moves() {
		s.move(env)
	}

	s.State = NextState(s.State, s.condition(env), cfg)

	if s.Energy < cfg.StarvationThreshold*cfg.MaxEnergy {
		s.Kill("starvation")
	}
	if math.IsNaN(s.Energy) || math.IsNaN(s.Lat) || math.IsNaN(s.Lon) {
		s.Kill("numerical fault")
	}
}

// Kill marks the seal dead with a diagnostic; it is excluded from all
// further steps.
func (s *Seal) Kill(cause string) {
	if !s.Alive {
		return
	}
	s.Alive = false
	s.State = StateDead
	s.Diagnostic = cause
}

// ingest fills the stomach from the local depth zone, scaled by the floored
// habitat suitability index. No energy is gained here.
func (s *Seal) ingest(env Env) {
	cfg := env.Cfg
	zone := s.zone(env)
	var base float64
	switch zone {
	case habitat.ZoneShallow:
		base = cfg.ShallowRate
	case habitat.ZoneMedium:
		base = cfg.MediumRate
	case habitat.ZoneDeep:
		base = cfg.DeepRate
	}
	// Coastline and land cells are never valid foraging targets.
	if !env.Snap.Land.Empty() && env.Snap.Land.ClassAt(s.Lat, s.Lon) != envgrid.ClassWater {
		base = 0
	}

	chl := env.Snap.Value(envgrid.VarChlorophyll, s.Lat, s.Lon)
	hsi := habitat.Suitability(chl, cfg.HSIChlThreshold, cfg.HSIFloor)
	gain := base * hsi * env.DT
	if cfg.ForagingNoise > 0 {
		gain *= 1 + (env.Rand.Float64()*2-1)*cfg.ForagingNoise
	}
	if gain <= 0 {
		s.ZeroIntakeHours += int(env.DT)
		return
	}
	s.ZeroIntakeHours = 0
	s.Stomach = math.Min(s.Stomach+gain, cfg.StomachCapacity)
}

// digest converts stomach content to energy at the configured rate. Energy
// is capped at MaxEnergy and the stomach shrinks by exactly the converted
// amount.
func (s *Seal) digest(env Env) {
	cfg := env.Cfg
	if s.Stomach <= 0 {
		return
	}
	digestKg := math.Min(cfg.DigestionRate*env.DT, s.Stomach)
	gain := digestKg * cfg.EnergyPerKgFood
	if headroom := cfg.MaxEnergy - s.Energy; gain > headroom {
		gain = headroom
		digestKg = gain / cfg.EnergyPerKgFood
	}
	if gain <= 0 {
		return
	}
	s.Energy += gain
	s.Stomach = math.Max(0, s.Stomach-digestKg)
}

// zone classifies the depth under the seal. Without a land mask (void mode)
// the whole domain counts as shallow water.
func (s *Seal) zone(env Env) habitat.Zone {
	if env.Snap.Land.Empty() {
		return habitat.ZoneShallow
	}
	return habitat.DepthZone(env.Snap.Land.DepthAt(s.Lat, s.Lon))
}

func (s *Seal) refreshDistToLand(env Env) {
	s.distLandAge += int(env.DT)
	if s.distLandAge < landCacheHours {
		return
	}
	s.DistToLand = habitat.DistanceToLand(env.Snap.Land, s.Lat, s.Lon, env.Cfg.LandSearchRadius)
	s.distLandAge = 0
}

// condition captures everything the transition table may consult.
func (s *Seal) condition(env Env) Cond {
	cfg := env.Cfg
	return Cond{
		Tide:            env.Snap.TidePhase,
		WaveHeight:      env.Snap.Value(envgrid.VarWaveHeight, s.Lat, s.Lon),
		IsDay:           env.IsDay,
		Class:           env.Snap.Land.ClassAt(s.Lat, s.Lon),
		EnergyFrac:      s.Energy / cfg.MaxEnergy,
		StomachFrac:     s.Stomach / cfg.StomachCapacity,
		Zone:            s.zone(env),
		ZeroIntakeHours: s.ZeroIntakeHours,
	}
}
