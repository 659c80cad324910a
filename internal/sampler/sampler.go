// Package sampler selects a bounded, deduplicated set of grid cells that
// approximates a region at a resolution without enumerating the whole grid.
//
// Global views at resolutions 0-3 expand the base cells. Everything else
// resolves a lattice of points to their enclosing cells, with the lattice
// density chosen from the expected cell count and capped per resolution.
// Lattice sampling can miss thin cells and is not uniform; it is meant for
// drawing, not for exact coverage.
package sampler

import (
	"context"
	"fmt"
	"math"

	"h3vector/internal/geo"
	"h3vector/internal/grid"
)

// ExpandMaxResolution is the finest global resolution sampled by expanding base cells
const ExpandMaxResolution = 3

// Cap returns the maximum number of cells sampled at a resolution.
// It bounds computation; coarse resolutions have few real cells so they get
// the loosest limit.
func Cap(resolution int) int {
	switch {
	case resolution <= 2:
		return 10000
	case resolution <= 4:
		return 5000
	case resolution <= 6:
		return 1000
	default:
		return 500
	}
}

// Sample returns the cells approximating region at resolution. A provider
// failure aborts the whole call; no partial set is ever returned.
func Sample(ctx context.Context, provider grid.Provider, resolution int, region geo.Region) ([]grid.CellID, error) {
	if resolution < 0 || resolution > grid.MaxResolution {
		return nil, fmt.Errorf("%w: %d", grid.ErrInvalidResolution, resolution)
	}

	limit := Cap(resolution)

	var (
		cells []grid.CellID
		err   error
	)
	switch {
	case region.IsGlobal() && resolution <= ExpandMaxResolution:
		// Base cells are unique and children of distinct parents never overlap.
		return expandBaseCells(ctx, provider, resolution, limit)

	case region.IsGlobal():
		sqrtCap := math.Sqrt(float64(limit))
		cells, err = lattice(ctx, provider, resolution, limit, geo.WorldBounds, 180/sqrtCap, 360/sqrtCap)

	default:
		if err := region.Validate(); err != nil {
			return nil, err
		}
		latStep, lngStep := regionSteps(region, resolution, limit)
		cells, err = lattice(ctx, provider, resolution, limit, region.Bounds, latStep, lngStep)
	}
	if err != nil {
		return nil, err
	}

	return Dedupe(cells), nil
}

// expandBaseCells appends the children of each base cell until the running
// total exceeds the cap. The last batch is kept whole, so the result may
// overshoot the cap by one base cell's descendants.
func expandBaseCells(ctx context.Context, provider grid.Provider, resolution, limit int) ([]grid.CellID, error) {
	baseCells, err := provider.BaseCells()
	if err != nil {
		return nil, fmt.Errorf("base cells: %w", err)
	}

	if resolution == 0 {
		return baseCells, nil
	}

	var cells []grid.CellID
	for _, base := range baseCells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		children, err := provider.Children(base, resolution)
		if err != nil {
			return nil, fmt.Errorf("children of %s: %w", base, err)
		}
		cells = append(cells, children...)
		if len(cells) > limit {
			break
		}
	}

	return cells, nil
}

// NumPoints returns the lattice point budget for a regional sample
func NumPoints(resolution, limit int) int {
	return int(math.Min(float64(limit), 100*math.Pow(3, float64(resolution))))
}

// regionSteps spreads the point budget over the box keeping its aspect ratio
func regionSteps(region geo.Region, resolution, limit int) (latStep, lngStep float64) {
	numPoints := float64(NumPoints(resolution, limit))
	latRange := region.LatRange()
	lngRange := region.LngRange()

	latStep = latRange / math.Sqrt(numPoints/(lngRange/latRange))
	lngStep = lngRange / math.Sqrt(numPoints/(latRange/lngRange))
	return latStep, lngStep
}

// lattice resolves points on an inclusive grid over bounds, latitude outer and
// longitude inner, stopping once limit points have been resolved.
func lattice(ctx context.Context, provider grid.Provider, resolution, limit int, bounds geo.Bounds, latStep, lngStep float64) ([]grid.CellID, error) {
	cells := make([]grid.CellID, 0, limit)

	for lat := bounds.MinLat; lat <= bounds.MaxLat; lat += latStep {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for lng := bounds.MinLon; lng <= bounds.MaxLon; lng += lngStep {
			cell, err := provider.CellAt(lat, lng, resolution)
			if err != nil {
				return nil, fmt.Errorf("cell at %.6f, %.6f: %w", lat, lng, err)
			}
			cells = append(cells, cell)
			if len(cells) >= limit {
				break
			}
		}
		if len(cells) >= limit {
			break
		}
	}

	return cells, nil
}

// Dedupe removes repeated cells keeping first-occurrence order
func Dedupe(cells []grid.CellID) []grid.CellID {
	seen := make(map[grid.CellID]struct{}, len(cells))
	unique := make([]grid.CellID, 0, len(cells))

	for _, c := range cells {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	return unique
}
