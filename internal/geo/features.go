package geo

import "fmt"

// FeatureType represents the type of basemap feature
type FeatureType int

const (
	FeatureCoastline FeatureType = iota
	FeatureBorder
)

// String returns a string representation of the feature type
func (f FeatureType) String() string {
	switch f {
	case FeatureCoastline:
		return "Coastline"
	case FeatureBorder:
		return "Border"
	default:
		return "Unknown"
	}
}

// LatLon represents a geographic coordinate
type LatLon struct {
	Lat float64
	Lon float64
}

// Feature is a basemap polyline drawn underneath the hexagons
type Feature struct {
	Type   FeatureType
	Points []LatLon
}

// NewLineFeature creates a new line/polyline feature
func NewLineFeature(ftype FeatureType, points []LatLon) *Feature {
	return &Feature{
		Type:   ftype,
		Points: points,
	}
}

// Bounds represents a geographic bounding box
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains checks if a point is within the bounds
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lon >= b.MinLon && lon <= b.MaxLon
}

// String formats the box as [west, south, east, north]
func (b Bounds) String() string {
	return fmt.Sprintf("[%.4f, %.4f, %.4f, %.4f]", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// FilterByBounds keeps features with at least one vertex inside the bounds
func FilterByBounds(features []*Feature, bounds Bounds) []*Feature {
	filtered := make([]*Feature, 0)

	for _, feature := range features {
		for _, point := range feature.Points {
			if bounds.Contains(point.Lat, point.Lon) {
				filtered = append(filtered, feature)
				break
			}
		}
	}

	return filtered
}
