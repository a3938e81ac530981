package agent

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/alex-kolmakov/monk-seal-modelling/internal/envgrid"
	"github.com/alex-kolmakov/monk-seal-modelling/internal/habitat"
)

// candidate attempts per movement step before the seal stays put.
const moveAttempts = 10

// move computes the next position via a correlated random walk, overridden
// by an active intention (seek land, seek patch). A candidate is rejected
// when the interior of the straight path crosses a true land cell, which
// permits water-land endpoint transitions while forbidding routes that
// tunnel through island interiors.
func (s *Seal) move(env Env) {
	cfg := env.Cfg
	g := env.Snap.Land
	step := cfg.SwimSpeed * env.DT

	s.updateIntent(env, step)

	jitter := distuv.Normal{Mu: 0, Sigma: cfg.HeadingJitter, Src: env.Src}
	seekingLand := s.State == StateHaulingOut

	for try := 0; try < moveAttempts; try++ {
		heading := s.Heading + jitter.Rand()
		if s.Intent != IntentNone {
			heading = math.Atan2(s.TargetLat-s.Lat, s.TargetLon-s.Lon) + jitter.Rand()*0.5
		}
		nlat := s.Lat + step*math.Sin(heading)
		nlon := s.Lon + step*math.Cos(heading)

		if habitat.PathCrossesLand(g, s.Lat, s.Lon, nlat, nlon, pathSampleResolution) {
			continue
		}
		if !seekingLand && g.ClassAt(nlat, nlon) == envgrid.ClassLand {
			// Water states stay off land; only a hauling-out seal may end
			// a step on a land cell.
			continue
		}
		s.Lat, s.Lon, s.Heading = nlat, nlon, heading
		return
	}
	// Everything rejected: hold position and turn around for the next step.
	s.Heading += math.Pi
}

// updateIntent manages the seal's movement goal for the current state.
func (s *Seal) updateIntent(env Env, step float64) {
	cfg := env.Cfg
	g := env.Snap.Land

	// Central-place constraint: beyond the island boundary movement is
	// forcibly redirected toward the nearest land, whatever the state. A
	// relocating seal abandons its waypoint rather than drifting further out.
	if s.DistToLand > cfg.IslandBoundary {
		if tlat, tlon, ok := habitat.NearestLand(g, s.Lat, s.Lon, cfg.LandSearchRadius); ok {
			s.Intent, s.TargetLat, s.TargetLon = IntentSeekLand, tlat, tlon
			return
		}
	}

	switch s.State {
	case StateHaulingOut:
		// Re-aim at the nearest true land every step; the classification
		// excludes coastline cells, so a seal whose target resolves to a
		// wet boundary keeps going until true land is in reach.
		if tlat, tlon, ok := habitat.NearestLand(g, s.Lat, s.Lon, cfg.LandSearchRadius); ok {
			s.Intent, s.TargetLat, s.TargetLon = IntentSeekLand, tlat, tlon
		} else {
			s.Intent = IntentNone
		}
		return

	case StateTransiting:
		if s.Intent == IntentSeekPatch {
			if math.Hypot(s.TargetLat-s.Lat, s.TargetLon-s.Lon) > step {
				return
			}
			s.Intent = IntentNone
		}
		// Pick a distant waypoint once per relocation bout. A forced land
		// target from a boundary excursion is overridden here too.
		bearing := env.Rand.Float64() * 2 * math.Pi
		dist := 0.2 + env.Rand.Float64()*0.3
		s.Intent = IntentSeekPatch
		s.TargetLat = s.Lat + dist*math.Sin(bearing)
		s.TargetLon = s.Lon + dist*math.Cos(bearing)
		return
	}

	// Back inside the boundary: drop a stale forced land target.
	if s.Intent == IntentSeekLand {
		s.Intent = IntentNone
	}
}
