package geo

import (
	"fmt"
	"path/filepath"

	"github.com/jonas-p/go-shp"

	"h3vector/internal/debug"
)

// ShapefileLoader loads basemap polylines from ESRI shapefiles
type ShapefileLoader struct {
	dataDir string
}

// NewShapefileLoader creates a new shapefile loader
func NewShapefileLoader(dataDir string) *ShapefileLoader {
	return &ShapefileLoader{
		dataDir: dataDir,
	}
}

// BasemapFiles maps each basemap layer to its Natural Earth base filename
var BasemapFiles = map[FeatureType]string{
	FeatureCoastline: "ne_110m_coastline",
	FeatureBorder:    "ne_110m_admin_0_boundary_lines_land",
}

// LoadBasemap loads every basemap layer found in the data directory.
// Missing layers are skipped; the map still works without a basemap.
func (s *ShapefileLoader) LoadBasemap() []*Feature {
	var features []*Feature

	for _, ftype := range []FeatureType{FeatureCoastline, FeatureBorder} {
		path := filepath.Join(s.dataDir, BasemapFiles[ftype]+".shp")
		layer, err := s.LoadShapefile(path, ftype)
		if err != nil {
			debug.L().Warn("basemap layer skipped", "layer", ftype, "err", err)
			continue
		}
		features = append(features, layer...)
	}

	debug.Log("loaded %d basemap features from %s", len(features), s.dataDir)
	return features
}

// LoadShapefile loads a polyline or polygon shapefile as line features.
// Each part of a multi-part shape becomes its own feature.
func (s *ShapefileLoader) LoadShapefile(path string, ftype FeatureType) ([]*Feature, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer shape.Close()

	features := make([]*Feature, 0)

	for shape.Next() {
		_, p := shape.Shape()

		switch geom := p.(type) {
		case *shp.PolyLine:
			features = append(features, splitParts(ftype, geom.Parts, geom.Points)...)
		case *shp.Polygon:
			features = append(features, splitParts(ftype, geom.Parts, geom.Points)...)
		}
	}

	return features, nil
}

// splitParts cuts a shapefile point array at its part offsets
func splitParts(ftype FeatureType, parts []int32, points []shp.Point) []*Feature {
	var features []*Feature

	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || end-start < 2 {
			continue
		}

		line := make([]LatLon, 0, end-start)
		for _, point := range points[start:end] {
			line = append(line, LatLon{Lat: point.Y, Lon: point.X})
		}
		features = append(features, NewLineFeature(ftype, line))
	}

	return features
}
