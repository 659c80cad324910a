package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
)

func TestLoadShapefileSplitsParts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, BasemapFiles[FeatureCoastline]+".shp")

	writer, err := shp.Create(path, shp.POLYLINE)
	if err != nil {
		t.Fatalf("shp.Create failed: %v", err)
	}
	writer.Write(shp.NewPolyLine([][]shp.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		{{X: 10, Y: 10}, {X: 11, Y: 11}},
	}))
	writer.Write(shp.NewPolyLine([][]shp.Point{
		{{X: -5, Y: 5}, {X: -6, Y: 6}},
	}))
	writer.Close()

	loader := NewShapefileLoader(dir)
	features, err := loader.LoadShapefile(path, FeatureCoastline)
	if err != nil {
		t.Fatalf("LoadShapefile failed: %v", err)
	}

	if len(features) != 3 {
		t.Fatalf("got %d features, want 3 (one per part)", len(features))
	}
	if len(features[0].Points) != 3 || len(features[1].Points) != 2 {
		t.Errorf("part sizes = %d, %d, want 3, 2", len(features[0].Points), len(features[1].Points))
	}
	if features[1].Points[0] != (LatLon{Lat: 10, Lon: 10}) {
		t.Errorf("second part starts at %v, want {10 10}", features[1].Points[0])
	}

	basemap := loader.LoadBasemap()
	if len(basemap) != 3 {
		t.Errorf("LoadBasemap returned %d features, want 3 (borders layer missing)", len(basemap))
	}
}

func TestLoadShapefileMissing(t *testing.T) {
	loader := NewShapefileLoader(os.TempDir())
	if _, err := loader.LoadShapefile(filepath.Join(t.TempDir(), "nope.shp"), FeatureBorder); err == nil {
		t.Error("expected an error for a missing shapefile")
	}
}

func TestFilterByBounds(t *testing.T) {
	features := []*Feature{
		NewLineFeature(FeatureCoastline, []LatLon{{0, 0}, {1, 1}}),
		NewLineFeature(FeatureCoastline, []LatLon{{50, 50}, {51, 51}}),
	}
	got := FilterByBounds(features, Bounds{MinLat: -1, MaxLat: 2, MinLon: -1, MaxLon: 2})
	if len(got) != 1 || got[0] != features[0] {
		t.Errorf("FilterByBounds kept %d features, want only the first", len(got))
	}
}
