// Package envgrid turns irregular multi-source gridded ocean datasets into
// fast per-timestep point lookups. A Buffer owns the raw datasets; Refresh
// materializes an immutable Snapshot for one simulated time, and all agent
// queries run against that snapshot.
package envgrid

// Var names a logical environmental variable tracked by the buffer.
type Var string

const (
	VarWaveHeight   Var = "swh"
	VarChlorophyll  Var = "chl"
	VarTemperature  Var = "temp"
	VarCurrentEast  Var = "uo"
	VarCurrentNorth Var = "vo"
)

// TrackedVars lists every logical variable the buffer resolves and serves.
var TrackedVars = []Var{VarWaveHeight, VarChlorophyll, VarTemperature, VarCurrentEast, VarCurrentNorth}

// aliases maps each logical variable to a priority-ordered list of
// source-specific names. Resolution happens once at load time; the first
// dataset variable matching any alias wins.
var aliases = map[Var][]string{
	VarWaveHeight:   {"VHM0", "VAVH", "swh", "significant_wave_height"},
	VarChlorophyll:  {"CHL", "chl", "mass_concentration_of_chlorophyll_a_in_sea_water"},
	VarTemperature:  {"thetao", "temp", "sst", "sea_surface_temperature"},
	VarCurrentEast:  {"uo", "eastward_sea_water_velocity"},
	VarCurrentNorth: {"vo", "northward_sea_water_velocity"},
}

// defaults are the fallback values served when a query cell is missing data.
var defaults = map[Var]float64{
	VarWaveHeight:   0.0,
	VarChlorophyll:  0.05,
	VarTemperature:  18.0,
	VarCurrentEast:  0.0,
	VarCurrentNorth: 0.0,
}

// DefaultValue returns the documented fallback for a logical variable.
func DefaultValue(v Var) float64 {
	return defaults[v]
}
