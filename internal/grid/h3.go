package grid

import (
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	h3 "github.com/uber/h3-go/v4"
)

// H3 is a Provider backed by the uber H3 library
type H3 struct{}

// NewH3 creates a new H3 provider
func NewH3() *H3 {
	return &H3{}
}

// parse converts a CellID into an H3 cell and validates it
func parse(id CellID) (h3.Cell, error) {
	index, err := strconv.ParseUint(string(id), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCell, id)
	}

	cell := h3.Cell(index)
	if !cell.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCell, id)
	}
	return cell, nil
}

func checkResolution(resolution int) error {
	if resolution < 0 || resolution > MaxResolution {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	return nil
}

// CellAt returns the cell containing lat/lng at the given resolution
func (p *H3) CellAt(lat, lng float64, resolution int) (CellID, error) {
	if err := checkResolution(resolution); err != nil {
		return "", err
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return "", fmt.Errorf("%w: %v, %v", ErrInvalidCoordinate, lat, lng)
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), resolution)
	if err != nil {
		return "", fmt.Errorf("%w: %v, %v: %v", ErrInvalidCoordinate, lat, lng, err)
	}
	if cell == 0 {
		return "", fmt.Errorf("%w: %v, %v", ErrInvalidCoordinate, lat, lng)
	}

	return CellID(cell.String()), nil
}

// Boundary returns the cell vertices in lat/lng order
func (p *H3) Boundary(id CellID) ([]LatLng, error) {
	cell, err := parse(id)
	if err != nil {
		return nil, err
	}

	boundary, err := cell.Boundary()
	if err != nil {
		return nil, fmt.Errorf("boundary of %s: %w", id, err)
	}

	points := make([]LatLng, len(boundary))
	for i, vertex := range boundary {
		points[i] = LatLng{Lat: vertex.Lat, Lng: vertex.Lng}
	}
	return points, nil
}

// BoundaryGeoJSON returns the boundary as a closed lng/lat ring
func (p *H3) BoundaryGeoJSON(id CellID) (orb.Ring, error) {
	cell, err := parse(id)
	if err != nil {
		return nil, err
	}

	boundary, err := cell.Boundary()
	if err != nil {
		return nil, fmt.Errorf("boundary of %s: %w", id, err)
	}
	if len(boundary) == 0 {
		return nil, fmt.Errorf("empty boundary for cell %s", id)
	}

	ring := make(orb.Ring, 0, len(boundary)+1)
	for _, vertex := range boundary {
		ring = append(ring, orb.Point{vertex.Lng, vertex.Lat})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// Centroid returns the cell center
func (p *H3) Centroid(id CellID) (LatLng, error) {
	cell, err := parse(id)
	if err != nil {
		return LatLng{}, err
	}

	center, err := cell.LatLng()
	if err != nil {
		return LatLng{}, fmt.Errorf("centroid of %s: %w", id, err)
	}
	return LatLng{Lat: center.Lat, Lng: center.Lng}, nil
}

// Resolution returns the resolution encoded in the cell index
func (p *H3) Resolution(id CellID) (int, error) {
	cell, err := parse(id)
	if err != nil {
		return 0, err
	}
	return cell.Resolution(), nil
}

// BaseCells returns the 122 resolution 0 cells in index order
func (p *H3) BaseCells() ([]CellID, error) {
	cells, err := h3.Res0Cells()
	if err != nil {
		return nil, fmt.Errorf("base cells: %w", err)
	}
	return toIDs(cells), nil
}

// Children returns the descendants of a cell at a finer resolution
func (p *H3) Children(id CellID, resolution int) ([]CellID, error) {
	cell, err := parse(id)
	if err != nil {
		return nil, err
	}
	if err := checkResolution(resolution); err != nil {
		return nil, err
	}
	if resolution < cell.Resolution() {
		return nil, fmt.Errorf("%w: %d is coarser than %s", ErrInvalidResolution, resolution, id)
	}

	children, err := cell.Children(resolution)
	if err != nil {
		return nil, fmt.Errorf("children of %s: %w", id, err)
	}
	return toIDs(children), nil
}

// IsPentagon reports whether the cell is one of the 12 pentagons of its resolution
func (p *H3) IsPentagon(id CellID) (bool, error) {
	cell, err := parse(id)
	if err != nil {
		return false, err
	}
	return cell.IsPentagon(), nil
}

// Union returns the multi-polygon outline of a set of same-resolution cells
func (p *H3) Union(ids []CellID) ([]Polygon, error) {
	cells := make([]h3.Cell, len(ids))
	for i, id := range ids {
		cell, err := parse(id)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}

	geoPolygons, err := h3.CellsToMultiPolygon(cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnion, err)
	}

	polygons := make([]Polygon, 0, len(geoPolygons))
	for _, gp := range geoPolygons {
		polygon := Polygon{toLatLngs(gp.GeoLoop)}
		for _, hole := range gp.Holes {
			polygon = append(polygon, toLatLngs(hole))
		}
		polygons = append(polygons, polygon)
	}
	return polygons, nil
}

func toIDs(cells []h3.Cell) []CellID {
	ids := make([]CellID, len(cells))
	for i, c := range cells {
		ids[i] = CellID(c.String())
	}
	return ids
}

func toLatLngs(loop h3.GeoLoop) []LatLng {
	points := make([]LatLng, len(loop))
	for i, ll := range loop {
		points[i] = LatLng{Lat: ll.Lat, Lng: ll.Lng}
	}
	return points
}
