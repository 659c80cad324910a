package geo

import (
	"math"
	"testing"
)

func TestRegionalProjectionCorners(t *testing.T) {
	const width, height, padding = 800.0, 500.0, 50.0

	for _, region := range DefaultRegions[1:] {
		t.Run(region.Name, func(t *testing.T) {
			p := NewProjection(region, width, height, padding)
			b := region.Bounds

			tests := []struct {
				name     string
				lat, lon float64
				want     Point
			}{
				{"North West", b.MaxLat, b.MinLon, Point{padding, padding}},
				{"North East", b.MaxLat, b.MaxLon, Point{width - padding, padding}},
				{"South West", b.MinLat, b.MinLon, Point{padding, height - padding}},
				{"South East", b.MinLat, b.MaxLon, Point{width - padding, height - padding}},
			}

			for _, tt := range tests {
				if got := p.Project(tt.lat, tt.lon); got != tt.want {
					t.Errorf("%s: Project(%v, %v) = %v, want %v", tt.name, tt.lat, tt.lon, got, tt.want)
				}
			}
		})
	}
}

func TestGlobalProjection(t *testing.T) {
	global := DefaultRegions[0]
	p := NewProjection(global, 800, 500, 50)

	if got := p.Project(0, -180); got.X != 50 {
		t.Errorf("lon -180 maps to x=%v, want 50", got.X)
	}
	if got := p.Project(0, 180); got.X != 750 {
		t.Errorf("lon 180 maps to x=%v, want 750", got.X)
	}

	// The equator sits at height/2 + padding, not at the vertical center.
	if got := p.Project(0, 0); math.Abs(got.Y-300) > 1e-9 {
		t.Errorf("equator maps to y=%v, want 300", got.Y)
	}

	// The vertical scale uses the drawing width.
	north := p.Project(45, 0)
	mercN := math.Log(math.Tan(math.Pi/4 + 45*math.Pi/360))
	want := 250 - 700*mercN/(2*math.Pi) + 50
	if math.Abs(north.Y-want) > 1e-9 {
		t.Errorf("lat 45 maps to y=%v, want %v", north.Y, want)
	}
	if north.Y >= 300 {
		t.Errorf("northern latitude should be above the equator, got y=%v", north.Y)
	}
}

func TestUnprojectInvertsProject(t *testing.T) {
	points := []LatLon{{0, 0}, {45.5, -120.25}, {-33.9, 151.2}, {70, 30}, {-60, -75}}

	for _, region := range DefaultRegions {
		p := NewProjection(region, 1024, 640, 40)
		for _, pt := range points {
			xy := p.Project(pt.Lat, pt.Lon)
			lat, lon := p.Unproject(xy.X, xy.Y)
			if math.Abs(lat-pt.Lat) > 1e-9 || math.Abs(lon-pt.Lon) > 1e-9 {
				t.Errorf("%s: round trip of %v gave %v, %v", region.Name, pt, lat, lon)
			}
		}
	}
}

func TestGetBoundsClampsToSphere(t *testing.T) {
	p := NewProjection(DefaultRegions[0], 800, 500, 50)
	b := p.GetBounds()

	if b.MinLon != -180 || b.MaxLon != 180 {
		t.Errorf("global bounds longitude = [%v, %v], want [-180, 180]", b.MinLon, b.MaxLon)
	}
	if b.MinLat < -90 || b.MaxLat > 90 {
		t.Errorf("global bounds latitude = [%v, %v] escapes the sphere", b.MinLat, b.MaxLat)
	}
}
