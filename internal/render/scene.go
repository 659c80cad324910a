package render

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"h3vector/internal/debug"
	"h3vector/internal/geo"
	"h3vector/internal/grid"
)

// HexPath is one projected cell
type HexPath struct {
	Cell     grid.CellID
	Points   []geo.Point
	Fill     string
	Selected bool

	ring  orb.Ring
	bound orb.Bound
}

func newHexPath(cell grid.CellID, points []geo.Point, fill string) HexPath {
	ring := make(orb.Ring, len(points))
	for i, p := range points {
		ring[i] = orb.Point{p.X, p.Y}
	}
	return HexPath{
		Cell:   cell,
		Points: points,
		Fill:   fill,
		ring:   ring,
		bound:  ring.Bound(),
	}
}

// Contains reports whether a drawing point lies inside the cell
func (h *HexPath) Contains(x, y float64) bool {
	p := orb.Point{x, y}
	if !h.bound.Contains(p) {
		return false
	}
	return planar.RingContains(h.ring, p)
}

// BasemapLine is a projected basemap polyline
type BasemapLine struct {
	Type   geo.FeatureType
	Points []geo.Point
}

// Scene is everything needed to draw a sampled set, in drawing coordinates.
// Hexes are in draw order; later paths are on top.
type Scene struct {
	Width   float64
	Height  float64
	Hexes   []HexPath
	Outline [][][]geo.Point // polygons, each a list of rings
	Basemap []BasemapLine
}

// Options controls scene construction
type Options struct {
	ColorMode   ColorMode
	Selected    grid.CellID
	ShowOutline bool
	Basemap     []*geo.Feature
}

// BuildScene projects every cell boundary and assigns fills. A failed
// boundary lookup aborts; a failed outline union is logged and the outline
// left out.
func BuildScene(provider grid.Provider, cells []grid.CellID, projection *geo.Projection, opts Options) (*Scene, error) {
	scene := &Scene{
		Width:  projection.Width(),
		Height: projection.Height(),
		Hexes:  make([]HexPath, 0, len(cells)),
	}

	if len(opts.Basemap) > 0 {
		visible := geo.FilterByBounds(opts.Basemap, projection.GetBounds())
		for _, f := range visible {
			line := BasemapLine{Type: f.Type, Points: make([]geo.Point, len(f.Points))}
			for i, p := range f.Points {
				line.Points[i] = projection.Project(p.Lat, p.Lon)
			}
			scene.Basemap = append(scene.Basemap, line)
		}
	}

	for _, cell := range cells {
		boundary, err := provider.Boundary(cell)
		if err != nil {
			return nil, fmt.Errorf("boundary of %s: %w", cell, err)
		}

		pentagon := false
		if opts.ColorMode == ColorPentagon {
			if pentagon, err = provider.IsPentagon(cell); err != nil {
				return nil, fmt.Errorf("pentagon check for %s: %w", cell, err)
			}
		}

		selected := cell == opts.Selected
		hex := newHexPath(cell, projectAll(projection, boundary), CellColor(opts.ColorMode, cell, pentagon, selected))
		hex.Selected = selected
		scene.Hexes = append(scene.Hexes, hex)
	}

	if opts.ShowOutline && len(cells) > 0 {
		polygons, err := provider.Union(cells)
		if err != nil {
			debug.L().Warn("outline skipped", "cells", len(cells), "err", err)
		} else {
			for _, polygon := range polygons {
				rings := make([][]geo.Point, 0, len(polygon))
				for _, ring := range polygon {
					rings = append(rings, projectAll(projection, ring))
				}
				scene.Outline = append(scene.Outline, rings)
			}
		}
	}

	return scene, nil
}

func projectAll(projection *geo.Projection, vertices []grid.LatLng) []geo.Point {
	points := make([]geo.Point, len(vertices))
	for i, v := range vertices {
		points[i] = projection.Project(v.Lat, v.Lng)
	}
	return points
}

// HitTest returns the topmost cell containing a drawing point
func (s *Scene) HitTest(x, y float64) (grid.CellID, bool) {
	for i := len(s.Hexes) - 1; i >= 0; i-- {
		if s.Hexes[i].Contains(x, y) {
			return s.Hexes[i].Cell, true
		}
	}
	return "", false
}

// PathData formats a closed ring as SVG path data: "M x y L x y ... Z"
func PathData(points []geo.Point) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatFloat(p.X))
		b.WriteByte(' ')
		b.WriteString(formatFloat(p.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

// polygonPathData joins the rings of one polygon into a single path
func polygonPathData(rings [][]geo.Point) string {
	parts := make([]string, 0, len(rings))
	for _, ring := range rings {
		if d := PathData(ring); d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, " ")
}

// polylineData formats an open polyline
func polylineData(points []geo.Point) string {
	d := PathData(points)
	return strings.TrimSuffix(d, " Z")
}
