package config

import (
	"fmt"
	"sort"
	"strings"
)

// Presets adjust the seal parameter set for recognized oceanographic regimes.
// They mutate only the fields that differ from the Madeira defaults.
var presets = map[string]func(*SealConfig){
	// Oligotrophic Madeira: the defaults.
	"madeira": func(s *SealConfig) {},

	// Productive upwelling waters: HSI saturates at higher chlorophyll and
	// needs no floor to keep animals alive.
	"cabo-blanco": func(s *SealConfig) {
		s.HSIChlThreshold = 1.0
		s.HSIFloor = 0.1
		s.RMR = 750.0
	},

	// Tidal forcing disabled: both thresholds collapse to the midpoint so the
	// tide neither opens caves nor floods them.
	"no-tide": func(s *SealConfig) {
		s.HighTideThreshold = 0.5
		s.LowTideThreshold = 0.5
	},
}

// ApplyPreset mutates cfg in place for the named regime.
func ApplyPreset(cfg *SealConfig, name string) error {
	fn, ok := presets[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	fn(cfg)
	return nil
}

// PresetNames lists the recognized preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
