// Package habitat provides derived queries on top of the environment grid:
// depth zones, habitat suitability, nearest-land search, and land-crossing
// tests used by agent movement.
package habitat

import (
	"math"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
)

// Zone classifies bathymetric depth for foraging.
type Zone int

const (
	// ZoneDry marks cells with no valid depth (land or coastline).
	ZoneDry Zone = iota
	ZoneShallow
	ZoneMedium
	ZoneDeep
)

// Depth zone bounds in meters. 95% of dives stay in the shallow zone.
const (
	ShallowMaxDepth = 50.0
	MediumMaxDepth  = 100.0
)

func (z Zone) String() string {
	switch z {
	case ZoneShallow:
		return "shallow"
	case ZoneMedium:
		return "medium"
	case ZoneDeep:
		return "deep"
	default:
		return "dry"
	}
}

// DepthZone classifies a bathymetric depth. NaN depth means no water column.
func DepthZone(depthM float64) Zone {
	switch {
	case math.IsNaN(depthM):
		return ZoneDry
	case depthM <= ShallowMaxDepth:
		return ZoneShallow
	case depthM <= MediumMaxDepth:
		return ZoneMedium
	default:
		return ZoneDeep
	}
}

// Suitability computes the floored habitat suitability index: the
// productivity multiplier max(floor, min(chl/threshold, 1)).
func Suitability(chl, threshold, floor float64) float64 {
	hsi := math.Min(chl/threshold, 1.0)
	return math.Max(floor, hsi)
}

// NearestLand finds the closest true land cell (coastline excluded) within
// maxRadius degrees of the coordinate. Returns false when no land is in range
// or no land mask exists.
func NearestLand(g envgrid.LandGrid, lat, lon, maxRadius float64) (tlat, tlon float64, ok bool) {
	if g.Empty() {
		return 0, 0, false
	}
	rSpan := int(math.Ceil(maxRadius / g.LatStep))
	cSpan := int(math.Ceil(maxRadius / g.LonStep))
	r0 := int(math.Round((lat - g.LatMin) / g.LatStep))
	c0 := int(math.Round((lon - g.LonMin) / g.LonStep))

	best := math.Inf(1)
	for r := r0 - rSpan; r <= r0+rSpan; r++ {
		if r < 0 || r >= g.Rows {
			continue
		}
		for c := c0 - cSpan; c <= c0+cSpan; c++ {
			if c < 0 || c >= g.Cols {
				continue
			}
			if g.Class[r*g.Cols+c] != envgrid.ClassLand {
				continue
			}
			clat, clon := g.CellCenter(r, c)
			d := degreeDist(lat, lon, clat, clon)
			if d < best && d <= maxRadius {
				best, tlat, tlon, ok = d, clat, clon, true
			}
		}
	}
	return tlat, tlon, ok
}

// DistanceToLand returns the degree distance to the nearest true land cell
// within maxRadius, or +Inf when none is in range.
func DistanceToLand(g envgrid.LandGrid, lat, lon, maxRadius float64) float64 {
	tlat, tlon, ok := NearestLand(g, lat, lon, maxRadius)
	if !ok {
		return math.Inf(1)
	}
	return degreeDist(lat, lon, tlat, tlon)
}

// PathCrossesLand samples the interior of the segment (lat1,lon1)-(lat2,lon2)
// at the given degree resolution and reports whether any interior point falls
// on a true land cell. The endpoints and their grid cells are exempt, so
// legitimate water-land transitions (haul-out, launch) pass while routes
// tunneling through island interiors are rejected.
func PathCrossesLand(g envgrid.LandGrid, lat1, lon1, lat2, lon2, resolution float64) bool {
	if g.Empty() {
		return false
	}
	dist := degreeDist(lat1, lon1, lat2, lon2)
	if resolution <= 0 || dist <= resolution {
		return false
	}
	r1, c1 := g.Index(lat1, lon1)
	r2, c2 := g.Index(lat2, lon2)
	n := int(math.Ceil(dist / resolution))
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		lat := lat1 + t*(lat2-lat1)
		lon := lon1 + t*(lon2-lon1)
		r, c := g.Index(lat, lon)
		if (r == r1 && c == c1) || (r == r2 && c == c2) {
			continue
		}
		if g.Class[r*g.Cols+c] == envgrid.ClassLand {
			return true
		}
	}
	return false
}

func degreeDist(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Hypot(lat2-lat1, lon2-lon1)
}
