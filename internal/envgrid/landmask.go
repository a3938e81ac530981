package envgrid

import "math"

// deriveLandGrid computes bathymetry and land classification from the
// temperature variable. For each cell, the deepest vertical level with valid
// temperature defines depth; a cell with no valid level at any depth is
// missing (candidate land). A missing cell whose in-bounds neighbors are
// mostly (>=50%) missing too is land, otherwise coastline.
func deriveLandGrid(temp *Variable) LandGrid {
	g := LandGrid{
		Rows:    temp.Rows,
		Cols:    temp.Cols,
		LatMin:  temp.LatMin,
		LatStep: temp.LatStep,
		LonMin:  temp.LonMin,
		LonStep: temp.LonStep,
		Class:   make([]LandClass, temp.Rows*temp.Cols),
		Depth:   make([]float64, temp.Rows*temp.Cols),
	}

	// Bathymetry from the first time slice across all depth levels.
	depths := temp.Depths
	if len(depths) == 0 {
		depths = []float64{0}
	}
	for i := range g.Depth {
		g.Depth[i] = math.NaN()
	}
	for di := len(depths) - 1; di >= 0; di-- {
		layer := temp.slice(0, di)
		for i, val := range layer {
			if !math.IsNaN(val) && math.IsNaN(g.Depth[i]) {
				g.Depth[i] = depths[di]
			}
		}
	}

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			i := r*g.Cols + c
			if !math.IsNaN(g.Depth[i]) {
				g.Class[i] = ClassWater
				continue
			}
			missing, total := 0, 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr, nc := r+dr, c+dc
					if nr < 0 || nr >= g.Rows || nc < 0 || nc >= g.Cols {
						continue
					}
					total++
					if math.IsNaN(g.Depth[nr*g.Cols+nc]) {
						missing++
					}
				}
			}
			if total == 0 || 2*missing >= total {
				g.Class[i] = ClassLand
			} else {
				g.Class[i] = ClassCoastline
			}
		}
	}
	return g
}
