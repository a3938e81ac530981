package envgrid

import (
	"fmt"
	"math"
	"time"
)

// binding ties a logical variable to the dataset variable that resolved it.
type binding struct {
	ds      *Dataset
	v       *Variable
	srcName string
}

// Buffer loads gridded environmental sources and materializes immutable
// per-timestep snapshots. Resolution of logical variables against the alias
// table happens once, in NewBuffer; an unresolvable variable fails loudly
// here rather than at query time.
type Buffer struct {
	datasets    []*Dataset
	bindings    map[Var]binding
	land        LandGrid
	start       time.Time
	tidalPeriod float64 // hours
	snap        Snapshot
}

// NewBuffer resolves all tracked variables across the given datasets and
// derives the land classification from the temperature variable. With no
// datasets the buffer runs in void mode: every query serves defaults and the
// whole domain is open water.
func NewBuffer(datasets []*Dataset, start time.Time, tidalPeriodHours float64) (*Buffer, error) {
	if tidalPeriodHours <= 0 {
		tidalPeriodHours = 12.42
	}
	b := &Buffer{
		datasets:    datasets,
		bindings:    make(map[Var]binding),
		start:       start.UTC(),
		tidalPeriod: tidalPeriodHours,
	}
	if len(datasets) == 0 {
		b.snap = Snapshot{Time: b.start, Fields: map[Var]Field{}}
		return b, nil
	}

	for _, v := range TrackedVars {
		bd, err := resolve(datasets, v)
		if err != nil {
			return nil, err
		}
		b.bindings[v] = bd
	}

	temp := b.bindings[VarTemperature]
	b.land = deriveLandGrid(temp.v)
	b.Refresh(b.start)
	return b, nil
}

func resolve(datasets []*Dataset, v Var) (binding, error) {
	for _, name := range aliases[v] {
		for _, ds := range datasets {
			for i := range ds.Variables {
				if ds.Variables[i].Name == name {
					return binding{ds: ds, v: &ds.Variables[i], srcName: name}, nil
				}
			}
		}
	}
	return binding{}, fmt.Errorf("no dataset variable matches %q (aliases %v)", v, aliases[v])
}

// Land returns the load-time land classification grid.
func (b *Buffer) Land() LandGrid { return b.land }

// Snapshot returns the current snapshot without refreshing.
func (b *Buffer) Snapshot() Snapshot { return b.snap }

// SourceFor reports the dataset variable name a logical variable resolved to.
func (b *Buffer) SourceFor(v Var) (string, bool) {
	bd, ok := b.bindings[v]
	return bd.srcName, ok
}

// Refresh selects the nearest-in-time slice for every tracked variable,
// computes the analytic tide phase, and replaces the current snapshot. The
// returned snapshot is immutable; later refreshes build new ones.
func (b *Buffer) Refresh(now time.Time) Snapshot {
	fields := make(map[Var]Field, len(b.bindings))
	for v, bd := range b.bindings {
		ti := bd.v.timeIndexFor(now)
		fields[v] = Field{
			Data:    bd.v.slice(ti, 0), // surface level
			Rows:    bd.v.Rows,
			Cols:    bd.v.Cols,
			LatMin:  bd.v.LatMin,
			LatStep: bd.v.LatStep,
			LonMin:  bd.v.LonMin,
			LonStep: bd.v.LonStep,
		}
	}
	b.snap = Snapshot{
		Time:      now,
		TidePhase: TidePhase(b.start, now, b.tidalPeriod),
		Fields:    fields,
		Land:      b.land,
	}
	return b.snap
}

// TidePhase models a semidiurnal tide as a fixed-period sine wave scaled to
// [0,1]: 0.5*(1+sin(2*pi*elapsed_hours/period)).
func TidePhase(start, now time.Time, periodHours float64) float64 {
	elapsed := now.Sub(start).Hours()
	return 0.5 * (1 + math.Sin(2*math.Pi*elapsed/periodHours))
}
