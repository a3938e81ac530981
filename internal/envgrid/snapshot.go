package envgrid

import (
	"math"
	"time"
)

// Field is one materialized 2D layer on a regular grid. Index lookup is an
// affine transform clamped to the grid bounds, so queries are O(1) and never
// fail for out-of-domain coordinates.
type Field struct {
	Data    []float64
	Rows    int
	Cols    int
	LatMin  float64
	LatStep float64
	LonMin  float64
	LonStep float64
}

// Empty reports whether the field holds no data.
func (f Field) Empty() bool { return len(f.Data) == 0 }

// Index maps a coordinate to the nearest cell, clamped to the grid bounds.
func (f Field) Index(lat, lon float64) (row, col int) {
	row = clampIdx(int(math.Round((lat-f.LatMin)/f.LatStep)), f.Rows)
	col = clampIdx(int(math.Round((lon-f.LonMin)/f.LonStep)), f.Cols)
	return row, col
}

// At returns the cell value nearest the coordinate. Missing cells are NaN.
func (f Field) At(lat, lon float64) float64 {
	if f.Empty() {
		return math.NaN()
	}
	r, c := f.Index(lat, lon)
	return f.Data[r*f.Cols+c]
}

// CellCenter returns the coordinate at the center of cell (row, col).
func (f Field) CellCenter(row, col int) (lat, lon float64) {
	return f.LatMin + float64(row)*f.LatStep, f.LonMin + float64(col)*f.LonStep
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// LandClass classifies one grid cell of the land mask.
type LandClass uint8

const (
	ClassWater LandClass = iota
	// ClassCoastline is a nominally-land cell bordered predominantly by
	// water. It is excluded from both foraging and landing target sets.
	ClassCoastline
	ClassLand
)

func (c LandClass) String() string {
	switch c {
	case ClassCoastline:
		return "coastline"
	case ClassLand:
		return "land"
	default:
		return "water"
	}
}

// LandGrid is the bathymetry-derived land classification, computed once at
// load time and shared by every snapshot.
type LandGrid struct {
	Class   []LandClass
	Depth   []float64 // max valid depth per cell, NaN where no level has data
	Rows    int
	Cols    int
	LatMin  float64
	LatStep float64
	LonMin  float64
	LonStep float64
}

// Empty reports whether no land mask was derived (void mode: all water).
func (g LandGrid) Empty() bool { return len(g.Class) == 0 }

// ClassAt returns the land classification at a coordinate, clamped to the
// grid. Without a land mask every coordinate is water.
func (g LandGrid) ClassAt(lat, lon float64) LandClass {
	if g.Empty() {
		return ClassWater
	}
	r, c := g.field().Index(lat, lon)
	return g.Class[r*g.Cols+c]
}

// DepthAt returns bathymetric depth in meters at a coordinate, NaN on land.
func (g LandGrid) DepthAt(lat, lon float64) float64 {
	if g.Empty() {
		return math.NaN()
	}
	r, c := g.field().Index(lat, lon)
	return g.Depth[r*g.Cols+c]
}

// CellCenter returns the coordinate of cell (row, col).
func (g LandGrid) CellCenter(row, col int) (lat, lon float64) {
	return g.LatMin + float64(row)*g.LatStep, g.LonMin + float64(col)*g.LonStep
}

// Index maps a coordinate to its nearest cell, clamped to the grid bounds.
func (g LandGrid) Index(lat, lon float64) (row, col int) {
	return g.field().Index(lat, lon)
}

func (g LandGrid) field() Field {
	return Field{Rows: g.Rows, Cols: g.Cols, LatMin: g.LatMin, LatStep: g.LatStep,
		LonMin: g.LonMin, LonStep: g.LonStep, Data: g.Depth}
}

// Snapshot is the immutable view of the environment for one simulated time.
// Refresh builds a fresh snapshot each timestep and never mutates a published
// one, so snapshots can be handed to concurrent workers by value.
type Snapshot struct {
	Time      time.Time
	TidePhase float64 // [0,1], analytic semidiurnal tide
	Fields    map[Var]Field
	Land      LandGrid
}

// Value returns the variable value nearest the coordinate, falling back to
// the documented default when the cell or the whole field is missing.
func (s Snapshot) Value(v Var, lat, lon float64) float64 {
	f, ok := s.Fields[v]
	if !ok || f.Empty() {
		return DefaultValue(v)
	}
	val := f.At(lat, lon)
	if math.IsNaN(val) {
		return DefaultValue(v)
	}
	return val
}
