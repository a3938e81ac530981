package envgrid

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"
)

// Variable is one gridded time series as stored in a dataset file.
// Values are laid out [time][depth][row][col], row-major, with rows ordered
// south to north and columns west to east. Cells equal to MissingValue are
// treated as missing (land or no observation).
type Variable struct {
	Name         string      `json:"name"`
	Times        []time.Time `json:"times,omitempty"`
	Depths       []float64   `json:"depths,omitempty"` // meters, ascending
	LatMin       float64     `json:"lat_min"`
	LatStep      float64     `json:"lat_step"`
	LonMin       float64     `json:"lon_min"`
	LonStep      float64     `json:"lon_step"`
	Rows         int         `json:"rows"`
	Cols         int         `json:"cols"`
	MissingValue *float64    `json:"missing_value,omitempty"`
	Values       []float64   `json:"values"`
}

// Dataset is one environmental source file holding named variables,
// possibly at a different time cadence than its siblings.
type Dataset struct {
	Name      string     `json:"name"`
	Variables []Variable `json:"variables"`
}

// LoadDataset reads a gridded dataset from a JSON file and normalizes
// missing values to NaN.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if ds.Name == "" {
		ds.Name = path
	}
	for i := range ds.Variables {
		if err := ds.Variables[i].normalize(); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", path, err)
		}
	}
	return &ds, nil
}

// normalize validates the grid geometry and converts MissingValue to NaN.
func (v *Variable) normalize() error {
	if v.Rows < 1 || v.Cols < 1 {
		return fmt.Errorf("variable %q has empty grid %dx%d", v.Name, v.Rows, v.Cols)
	}
	if v.LatStep <= 0 || v.LonStep <= 0 {
		return fmt.Errorf("variable %q requires ascending grid axes (lat_step=%v lon_step=%v)",
			v.Name, v.LatStep, v.LonStep)
	}
	want := v.sliceCount() * v.Rows * v.Cols
	if len(v.Values) != want {
		return fmt.Errorf("variable %q has %d values, want %d", v.Name, len(v.Values), want)
	}
	if !sort.SliceIsSorted(v.Times, func(i, j int) bool { return v.Times[i].Before(v.Times[j]) }) {
		return fmt.Errorf("variable %q has unsorted time axis", v.Name)
	}
	if v.MissingValue != nil {
		mv := *v.MissingValue
		for i, val := range v.Values {
			if val == mv {
				v.Values[i] = math.NaN()
			}
		}
	}
	return nil
}

func (v *Variable) sliceCount() int {
	n := 1
	if len(v.Times) > 0 {
		n *= len(v.Times)
	}
	if len(v.Depths) > 0 {
		n *= len(v.Depths)
	}
	return n
}

func (v *Variable) depthCount() int {
	if len(v.Depths) == 0 {
		return 1
	}
	return len(v.Depths)
}

// slice returns the 2D layer for one (time, depth) index pair as a view into
// the variable's backing array. The layer must never be written.
func (v *Variable) slice(timeIdx, depthIdx int) []float64 {
	size := v.Rows * v.Cols
	off := (timeIdx*v.depthCount() + depthIdx) * size
	return v.Values[off : off+size]
}

// timeIndexFor selects the nearest time slice for t. Requested times outside
// the variable's span wrap modulo the span instead of erroring.
func (v *Variable) timeIndexFor(t time.Time) int {
	n := len(v.Times)
	if n <= 1 {
		return 0
	}
	first, last := v.Times[0], v.Times[n-1]
	span := last.Sub(first)
	if span > 0 {
		offset := t.Sub(first) % span
		if offset < 0 {
			offset += span
		}
		t = first.Add(offset)
	}
	// Nearest neighbor over the sorted axis.
	i := sort.Search(n, func(i int) bool { return !v.Times[i].Before(t) })
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if t.Sub(v.Times[i-1]) <= v.Times[i].Sub(t) {
		return i - 1
	}
	return i
}
