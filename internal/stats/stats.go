// Package stats summarizes a sampled cell set.
package stats

import (
	"fmt"
	"math"

	"h3vector/internal/grid"
)

// areaKm2 is the average cell area per resolution, 0 through 10
var areaKm2 = []float64{
	4250546.8477,
	607220.9782,
	86745.8540,
	12392.2663,
	1770.3095,
	252.9014,
	36.1292,
	5.1613,
	0.7373,
	0.1053,
	0.0150,
}

// AreaKm2 returns the approximate area of one cell at a resolution. Past the
// table each step divides the last known area by 7.
func AreaKm2(resolution int) float64 {
	if resolution < 0 {
		return 0
	}
	if resolution < len(areaKm2) {
		return areaKm2[resolution]
	}
	last := len(areaKm2) - 1
	return areaKm2[last] / math.Pow(7, float64(resolution-last))
}

// Stats describes a sampled set
type Stats struct {
	Count         int
	Pentagons     int
	Resolution    int
	ApproxAreaKm2 float64
}

// Compute derives the statistics of cells sampled at resolution. The area is
// the cell count times the per-cell average, so it only approximates the
// region when the set was sampled rather than enumerated.
func Compute(provider grid.Provider, cells []grid.CellID, resolution int) (Stats, error) {
	s := Stats{
		Count:      len(cells),
		Resolution: resolution,
	}

	for _, c := range cells {
		pentagon, err := provider.IsPentagon(c)
		if err != nil {
			return Stats{}, fmt.Errorf("pentagon check for %s: %w", c, err)
		}
		if pentagon {
			s.Pentagons++
		}
	}

	if s.Count > 0 {
		s.ApproxAreaKm2 = float64(s.Count) * AreaKm2(resolution)
	}

	return s, nil
}

// Summary formats the stats for a status line
func (s Stats) Summary() string {
	return fmt.Sprintf("Hexagons: %d  Pentagons: %d  Resolution: %d  Approx. Area: %.2f km²",
		s.Count, s.Pentagons, s.Resolution, s.ApproxAreaKm2)
}
