package session

import (
	"fmt"

	"h3vector/internal/grid"
)

// CellDetail is what the detail panel shows for the selected cell
type CellDetail struct {
	Index      grid.CellID
	Resolution int
	Pentagon   bool
	Center     grid.LatLng
	Vertices   int
}

// CenterString formats the center as "lat, lng" with six decimals
func (d CellDetail) CenterString() string {
	return fmt.Sprintf("%.6f, %.6f", d.Center.Lat, d.Center.Lng)
}

// Describe queries the provider for the details of one cell
func Describe(provider grid.Provider, cell grid.CellID) (CellDetail, error) {
	d := CellDetail{Index: cell}

	var err error
	if d.Resolution, err = provider.Resolution(cell); err != nil {
		return CellDetail{}, fmt.Errorf("resolution of %s: %w", cell, err)
	}
	if d.Pentagon, err = provider.IsPentagon(cell); err != nil {
		return CellDetail{}, fmt.Errorf("pentagon check for %s: %w", cell, err)
	}
	if d.Center, err = provider.Centroid(cell); err != nil {
		return CellDetail{}, fmt.Errorf("center of %s: %w", cell, err)
	}
	boundary, err := provider.Boundary(cell)
	if err != nil {
		return CellDetail{}, fmt.Errorf("boundary of %s: %w", cell, err)
	}
	d.Vertices = len(boundary)

	return d, nil
}
