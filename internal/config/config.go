// YAML config loader with CUE schema validation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SealConfig holds the physiological and behavioral parameters shared by all
// agents of one colony. It is immutable after Load; agents keep a reference.
type SealConfig struct {
	// Physiology
	MassKg           float64 `yaml:"mass_kg"`            // adult body mass
	StomachCapacity  float64 `yaml:"stomach_capacity"`   // kg
	InitialEnergy    float64 `yaml:"initial_energy"`     // kJ
	MaxEnergy        float64 `yaml:"max_energy"`         // kJ
	RMR              float64 `yaml:"rmr"`                // resting metabolic rate, kJ/h
	AMRMultiplier    float64 `yaml:"amr_multiplier"`     // active states burn RMR x this

	// Foraging rates per depth zone, kg/h before the HSI multiplier.
	ShallowRate float64 `yaml:"shallow_foraging_rate"` // 0-50m
	MediumRate  float64 `yaml:"medium_foraging_rate"`  // 50-100m
	DeepRate    float64 `yaml:"deep_foraging_rate"`    // >100m

	// Habitat suitability
	HSIChlThreshold float64 `yaml:"hsi_chl_threshold"` // mg/m3 for HSI=1.0
	HSIFloor        float64 `yaml:"hsi_floor"`         // minimum multiplier

	// Energy thresholds as fractions of MaxEnergy.
	StarvationThreshold float64 `yaml:"starvation_threshold"`
	CriticalThreshold   float64 `yaml:"critical_energy_threshold"`
	HighRestThreshold   float64 `yaml:"high_rest_threshold"`

	// Stomach fullness fraction that ends a foraging bout.
	FullnessThreshold float64 `yaml:"fullness_threshold"`

	// Tide phase thresholds in [0,1].
	HighTideThreshold float64 `yaml:"high_tide_threshold"`
	LowTideThreshold  float64 `yaml:"low_tide_threshold"`

	// Storm thresholds, significant wave height in meters.
	StormThreshold  float64 `yaml:"storm_threshold"`
	MaxLandingSwell float64 `yaml:"max_landing_swell"`

	// Digestion
	DigestionRate   float64 `yaml:"digestion_rate"`     // kg/h stomach to energy
	EnergyPerKgFood float64 `yaml:"energy_per_kg_food"` // kJ

	// Movement
	SwimSpeed        float64 `yaml:"swim_speed"`         // degrees per hour
	HeadingJitter    float64 `yaml:"heading_jitter"`     // stddev of turn, radians
	IslandBoundary   float64 `yaml:"island_boundary"`    // max distance from land, degrees
	LandSearchRadius float64 `yaml:"land_search_radius"` // nearest-land search bound, degrees

	// Hours of zero intake while foraging before the agent relocates.
	ZeroIntakePatience int `yaml:"zero_intake_patience"`

	// Half-width of the multiplicative per-step feeding noise, e.g. 0.5
	// scales intake by [0.5, 1.5). Zero disables the noise.
	ForagingNoise float64 `yaml:"foraging_noise"`
}

// DefaultSealConfig returns the Madeira (oligotrophic) parameter set.
func DefaultSealConfig() SealConfig {
	return SealConfig{
		MassKg:              300.0,
		StomachCapacity:     15.0,
		InitialEnergy:       90000.0,
		MaxEnergy:           100000.0,
		RMR:                 500.0,
		AMRMultiplier:       1.5,
		ShallowRate:         3.0,
		MediumRate:          1.0,
		DeepRate:            0.0,
		HSIChlThreshold:     0.5,
		HSIFloor:            0.5,
		StarvationThreshold: 0.10,
		CriticalThreshold:   0.15,
		HighRestThreshold:   0.90,
		FullnessThreshold:   0.80,
		HighTideThreshold:   0.70,
		LowTideThreshold:    0.30,
		StormThreshold:      2.5,
		MaxLandingSwell:     4.0,
		DigestionRate:       1.0,
		EnergyPerKgFood:     3500.0,
		SwimSpeed:           0.05,
		HeadingJitter:       0.3,
		IslandBoundary:      0.5,
		LandSearchRadius:    1.0,
		ZeroIntakePatience:  6,
	}
}

// Colony defines one group of agents released at a shared start location.
type Colony struct {
	Name      string  `yaml:"name"`
	CenterLat float64 `yaml:"center_lat"`
	CenterLon float64 `yaml:"center_lon"`
	Count     int     `yaml:"count"`
	// Initial positions are jittered uniformly within +/- Scatter degrees.
	Scatter float64 `yaml:"scatter"`
}

// SimulationConfig is the root configuration for one batch run.
type SimulationConfig struct {
	Start        string   `yaml:"start"` // RFC3339 or "2006-01-02 15:04"
	DurationDays int      `yaml:"duration_days"`
	StepHours    int      `yaml:"step_hours"`
	Seed         int64    `yaml:"seed"`
	Workers      int      `yaml:"workers"` // 0 = GOMAXPROCS
	TidalPeriodH float64  `yaml:"tidal_period_hours"`
	Preset       string   `yaml:"preset"` // see presets.go
	Datasets     []string `yaml:"datasets"`

	Colonies []Colony   `yaml:"colonies"`
	Seal     SealConfig `yaml:"seal"`
}

// StartTime parses the configured start timestamp.
func (c *SimulationConfig) StartTime() (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, c.Start); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable start time %q", c.Start)
}

// Load reads a YAML run configuration, validates it against the CUE schema,
// applies defaults and the named preset, and returns it.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := &SimulationConfig{Seal: DefaultSealConfig()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	if cfg.Preset != "" {
		if err := ApplyPreset(&cfg.Seal, cfg.Preset); err != nil {
			return nil, err
		}
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SimulationConfig) applyDefaults() {
	if c.Start == "" {
		c.Start = "2023-01-01 00:00"
	}
	if c.DurationDays == 0 {
		c.DurationDays = 30
	}
	if c.StepHours == 0 {
		c.StepHours = 1
	}
	if c.TidalPeriodH == 0 {
		c.TidalPeriodH = 12.42
	}
	if len(c.Colonies) == 0 {
		c.Colonies = []Colony{{Name: "desertas", CenterLat: 32.5, CenterLon: -16.5, Count: 50, Scatter: 0.05}}
	}
	for i := range c.Colonies {
		if c.Colonies[i].Scatter == 0 {
			c.Colonies[i].Scatter = 0.05
		}
	}
}

func (c *SimulationConfig) check() error {
	if _, err := c.StartTime(); err != nil {
		return err
	}
	if c.DurationDays < 1 {
		return fmt.Errorf("duration_days must be positive, got %d", c.DurationDays)
	}
	if c.StepHours < 1 {
		return fmt.Errorf("step_hours must be positive, got %d", c.StepHours)
	}
	for _, col := range c.Colonies {
		if col.Count < 1 {
			return fmt.Errorf("colony %q has no agents", col.Name)
		}
	}
	s := &c.Seal
	if s.MaxEnergy <= 0 || s.InitialEnergy <= 0 || s.InitialEnergy > s.MaxEnergy {
		return fmt.Errorf("invalid energy bounds: initial=%v max=%v", s.InitialEnergy, s.MaxEnergy)
	}
	if s.StarvationThreshold < 0 || s.StarvationThreshold >= 1 {
		return fmt.Errorf("starvation_threshold must be in [0,1), got %v", s.StarvationThreshold)
	}
	if s.LowTideThreshold > s.HighTideThreshold {
		return fmt.Errorf("low_tide_threshold %v exceeds high_tide_threshold %v",
			s.LowTideThreshold, s.HighTideThreshold)
	}
	return nil
}
