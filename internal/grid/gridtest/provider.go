// Package gridtest provides a deterministic in-memory grid.Provider for tests.
//
// Point lookups resolve to square lattice cells ("L<res>:<row>:<col>") whose
// edge halves at every resolution. The hierarchy used by BaseCells/Children is
// a separate tree ("H<res>:<base>.<digit>...") shaped like the real grid: 122
// base cells, 12 of them pentagons with 6 children each, all others with 7.
package gridtest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"h3vector/internal/grid"
)

// PentagonBases are the base cell numbers that act as pentagons
var PentagonBases = []int{4, 14, 24, 38, 49, 58, 63, 72, 83, 97, 107, 117}

// Provider is a fake grid.Provider. The zero value is ready to use.
type Provider struct {
	// FailAt makes CellAt fail for matching points
	FailAt func(lat, lng float64) bool

	// FailUnion makes Union fail
	FailUnion bool

	// Pentagons marks additional cells as pentagons
	Pentagons map[grid.CellID]bool

	// CellAtCalls counts point lookups
	CellAtCalls int
}

// New creates a fake provider
func New() *Provider {
	return &Provider{}
}

// Step returns the lattice cell edge in degrees at a resolution
func Step(resolution int) float64 {
	return 45.0 / math.Pow(2, float64(resolution))
}

// LatticeID returns the lattice cell enclosing a point
func LatticeID(lat, lng float64, resolution int) grid.CellID {
	step := Step(resolution)
	rows := int(math.Ceil(180 / step))
	cols := int(math.Ceil(360 / step))

	row := int(math.Floor((lat + 90) / step))
	col := int(math.Floor((lng + 180) / step))
	if row >= rows {
		row = rows - 1
	}
	if col >= cols {
		col = cols - 1
	}
	return grid.CellID(fmt.Sprintf("L%d:%d:%d", resolution, row, col))
}

func (p *Provider) CellAt(lat, lng float64, resolution int) (grid.CellID, error) {
	p.CellAtCalls++
	if resolution < 0 || resolution > grid.MaxResolution {
		return "", fmt.Errorf("%w: %d", grid.ErrInvalidResolution, resolution)
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return "", fmt.Errorf("%w: %v, %v", grid.ErrInvalidCoordinate, lat, lng)
	}
	if p.FailAt != nil && p.FailAt(lat, lng) {
		return "", fmt.Errorf("%w: %v, %v", grid.ErrInvalidCoordinate, lat, lng)
	}
	return LatticeID(lat, lng, resolution), nil
}

type cellKey struct {
	hierarchy  bool
	resolution int
	row, col   int
	base       int
	digits     []int
}

func parseID(id grid.CellID) (cellKey, error) {
	s := string(id)
	if len(s) < 2 {
		return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
	}

	parts := strings.Split(s[1:], ":")
	switch s[0] {
	case 'L':
		if len(parts) != 3 {
			return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
		}
		res, err1 := strconv.Atoi(parts[0])
		row, err2 := strconv.Atoi(parts[1])
		col, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
		}
		return cellKey{resolution: res, row: row, col: col}, nil

	case 'H':
		if len(parts) != 2 {
			return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
		}
		res, err := strconv.Atoi(parts[0])
		if err != nil {
			return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
		}
		path := strings.Split(parts[1], ".")
		base, err := strconv.Atoi(path[0])
		if err != nil || base < 0 || base >= grid.BaseCellCount || len(path)-1 != res {
			return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
		}
		key := cellKey{hierarchy: true, resolution: res, base: base}
		for _, d := range path[1:] {
			digit, err := strconv.Atoi(d)
			if err != nil || digit < 0 || digit > 6 {
				return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
			}
			key.digits = append(key.digits, digit)
		}
		return key, nil
	}

	return cellKey{}, fmt.Errorf("%w: %q", grid.ErrInvalidCell, id)
}

func hierarchyID(base int, digits []int) grid.CellID {
	var b strings.Builder
	fmt.Fprintf(&b, "H%d:%d", len(digits), base)
	for _, d := range digits {
		fmt.Fprintf(&b, ".%d", d)
	}
	return grid.CellID(b.String())
}

func isPentagonBase(base int) bool {
	for _, p := range PentagonBases {
		if p == base {
			return true
		}
	}
	return false
}

// square returns the lat/lng box of a cell
func (k cellKey) square() (south, west, size float64) {
	if !k.hierarchy {
		size = Step(k.resolution)
		return -90 + float64(k.row)*size, -180 + float64(k.col)*size, size
	}

	// Hierarchy cells are laid out in a strip per base cell; only uniqueness matters.
	size = 1.0 / math.Pow(3, float64(k.resolution))
	south = -60 + float64(k.base%10)*12
	west = -180 + float64(k.base/10)*27
	for i, d := range k.digits {
		scale := 1.0 / math.Pow(3, float64(i+1))
		south += float64(d/3) * scale
		west += float64(d%3) * scale
	}
	return south, west, size
}

func (p *Provider) Boundary(id grid.CellID) ([]grid.LatLng, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s, w, size := key.square()
	return []grid.LatLng{
		{Lat: s, Lng: w},
		{Lat: s, Lng: w + size},
		{Lat: s + size, Lng: w + size},
		{Lat: s + size, Lng: w},
	}, nil
}

func (p *Provider) BoundaryGeoJSON(id grid.CellID) (orb.Ring, error) {
	boundary, err := p.Boundary(id)
	if err != nil {
		return nil, err
	}
	ring := make(orb.Ring, 0, len(boundary)+1)
	for _, v := range boundary {
		ring = append(ring, orb.Point{v.Lng, v.Lat})
	}
	return append(ring, ring[0]), nil
}

func (p *Provider) Centroid(id grid.CellID) (grid.LatLng, error) {
	key, err := parseID(id)
	if err != nil {
		return grid.LatLng{}, err
	}
	s, w, size := key.square()
	return grid.LatLng{Lat: s + size/2, Lng: w + size/2}, nil
}

func (p *Provider) Resolution(id grid.CellID) (int, error) {
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}
	return key.resolution, nil
}

func (p *Provider) BaseCells() ([]grid.CellID, error) {
	cells := make([]grid.CellID, grid.BaseCellCount)
	for i := range cells {
		cells[i] = hierarchyID(i, nil)
	}
	return cells, nil
}

func (p *Provider) Children(id grid.CellID, resolution int) ([]grid.CellID, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if !key.hierarchy {
		return nil, fmt.Errorf("%w: lattice cell %s has no children", grid.ErrInvalidCell, id)
	}
	if resolution < key.resolution || resolution > grid.MaxResolution {
		return nil, fmt.Errorf("%w: %d", grid.ErrInvalidResolution, resolution)
	}

	frontier := [][]int{key.digits}
	for r := key.resolution; r < resolution; r++ {
		next := make([][]int, 0, len(frontier)*7)
		for _, digits := range frontier {
			pentagon := isPentagonBase(key.base) && allZero(digits)
			for d := 0; d <= 6; d++ {
				// pentagons have no child in the deleted direction
				if pentagon && d == 1 {
					continue
				}
				child := append(append([]int{}, digits...), d)
				next = append(next, child)
			}
		}
		frontier = next
	}

	children := make([]grid.CellID, len(frontier))
	for i, digits := range frontier {
		children[i] = hierarchyID(key.base, digits)
	}
	return children, nil
}

func allZero(digits []int) bool {
	for _, d := range digits {
		if d != 0 {
			return false
		}
	}
	return true
}

func (p *Provider) IsPentagon(id grid.CellID) (bool, error) {
	key, err := parseID(id)
	if err != nil {
		return false, err
	}
	if p.Pentagons[id] {
		return true, nil
	}
	return key.hierarchy && isPentagonBase(key.base) && allZero(key.digits), nil
}

// Union returns one polygon per cell; outlines are not merged.
func (p *Provider) Union(ids []grid.CellID) ([]grid.Polygon, error) {
	if p.FailUnion {
		return nil, grid.ErrUnion
	}
	polygons := make([]grid.Polygon, 0, len(ids))
	for _, id := range ids {
		boundary, err := p.Boundary(id)
		if err != nil {
			return nil, err
		}
		polygons = append(polygons, grid.Polygon{boundary})
	}
	return polygons, nil
}

var _ grid.Provider = (*Provider)(nil)
