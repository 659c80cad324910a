package export

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"h3vector/internal/grid"
)

// Feature property keys
const (
	PropH3Index    = "h3Index"
	PropResolution = "resolution"
	PropIsPentagon = "isPentagon"
)

// FeatureCollection builds one polygon feature per cell, in order. The
// geometry is the provider's GeoJSON boundary as-is.
func FeatureCollection(provider grid.Provider, cells []grid.CellID) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for _, cell := range cells {
		ring, err := provider.BoundaryGeoJSON(cell)
		if err != nil {
			return nil, fmt.Errorf("boundary of %s: %w", cell, err)
		}
		resolution, err := provider.Resolution(cell)
		if err != nil {
			return nil, fmt.Errorf("resolution of %s: %w", cell, err)
		}
		pentagon, err := provider.IsPentagon(cell)
		if err != nil {
			return nil, fmt.Errorf("pentagon check for %s: %w", cell, err)
		}

		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties[PropH3Index] = cell.String()
		feature.Properties[PropResolution] = resolution
		feature.Properties[PropIsPentagon] = pentagon
		fc.Append(feature)
	}

	return fc, nil
}

// GeoJSON returns the indented FeatureCollection document for cells
func GeoJSON(provider grid.Provider, cells []grid.CellID) ([]byte, error) {
	fc, err := FeatureCollection(provider, cells)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	return data, nil
}
