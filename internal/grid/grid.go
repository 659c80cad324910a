// Package grid defines the hexagonal grid index provider consumed by the
// sampler, the statistics engine and the render/export layer.
package grid

import (
	"errors"

	"github.com/paulmach/orb"
)

// MaxResolution is the finest resolution supported by the grid.
const MaxResolution = 15

// BaseCellCount is the number of resolution 0 cells covering the sphere.
const BaseCellCount = 122

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrUnion             = errors.New("union of cells failed")
)

// CellID is the canonical textual form of a grid cell index
type CellID string

// String returns the identifier text
func (c CellID) String() string {
	return string(c)
}

// LatLng is a geographic coordinate in degrees
type LatLng struct {
	Lat float64
	Lng float64
}

// Polygon is a list of rings; the first ring is the outer loop, the rest are holes.
type Polygon [][]LatLng

// Provider answers cell queries. All methods are pure lookups; any of them may
// fail and the caller must abort the operation it is part of.
type Provider interface {
	// CellAt returns the cell enclosing the point at the given resolution.
	CellAt(lat, lng float64, resolution int) (CellID, error)

	// Boundary returns the cell vertices in lat/lng order, not closed.
	Boundary(cell CellID) ([]LatLng, error)

	// BoundaryGeoJSON returns the cell boundary in the provider's GeoJSON
	// convention: lng/lat points with the first vertex repeated at the end.
	BoundaryGeoJSON(cell CellID) (orb.Ring, error)

	Centroid(cell CellID) (LatLng, error)
	Resolution(cell CellID) (int, error)
	BaseCells() ([]CellID, error)
	Children(cell CellID, resolution int) ([]CellID, error)
	IsPentagon(cell CellID) (bool, error)

	// Union returns the outline of the union of the cells as a multi-polygon.
	Union(cells []CellID) ([]Polygon, error)
}
