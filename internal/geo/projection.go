package geo

import (
	"math"
)

// Point is a drawing-space coordinate with (0, 0) at the top-left
type Point struct {
	X float64
	Y float64
}

// Projection maps geographic coordinates onto a padded drawing surface.
//
// The global region uses a Mercator-style vertical axis whose scale is taken
// from the drawing width so that both axes share one scale. Every other region
// maps both axes linearly onto its bounding box. Neither strategy handles the
// antimeridian, and Mercator y diverges toward the poles.
type Projection struct {
	region  Region
	width   float64
	height  float64
	padding float64
}

// NewProjection creates a projection for region on a width x height surface
func NewProjection(region Region, width, height, padding float64) *Projection {
	return &Projection{
		region:  region,
		width:   width,
		height:  height,
		padding: padding,
	}
}

// Project converts lat/lon to drawing coordinates
func (p *Projection) Project(lat, lon float64) Point {
	if p.region.IsGlobal() {
		x := (lon+180)*(p.width-2*p.padding)/360 + p.padding

		latRad := lat * math.Pi / 180
		mercN := math.Log(math.Tan(math.Pi/4 + latRad/2))
		y := p.height/2 - (p.width-2*p.padding)*mercN/(2*math.Pi) + p.padding

		return Point{X: x, Y: y}
	}

	b := p.region.Bounds
	x := (lon-b.MinLon)/(b.MaxLon-b.MinLon)*(p.width-2*p.padding) + p.padding
	// Y is inverted: latitude grows upward, drawing Y grows downward
	y := p.height - ((lat-b.MinLat)/(b.MaxLat-b.MinLat)*(p.height-2*p.padding) + p.padding)

	return Point{X: x, Y: y}
}

// Unproject converts drawing coordinates back to lat/lon
func (p *Projection) Unproject(x, y float64) (lat, lon float64) {
	if p.region.IsGlobal() {
		scale := p.width - 2*p.padding
		lon = (x-p.padding)*360/scale - 180

		mercN := (p.height/2 + p.padding - y) * 2 * math.Pi / scale
		lat = (2*math.Atan(math.Exp(mercN)) - math.Pi/2) * 180 / math.Pi

		return lat, lon
	}

	b := p.region.Bounds
	lon = (x-p.padding)/(p.width-2*p.padding)*(b.MaxLon-b.MinLon) + b.MinLon
	lat = (p.height-y-p.padding)/(p.height-2*p.padding)*(b.MaxLat-b.MinLat) + b.MinLat

	return lat, lon
}

// GetBounds returns the geographic bounds of the whole drawing surface
func (p *Projection) GetBounds() Bounds {
	topLeftLat, topLeftLon := p.Unproject(0, 0)
	bottomRightLat, bottomRightLon := p.Unproject(p.width, p.height)

	return Bounds{
		MinLat: math.Max(math.Min(topLeftLat, bottomRightLat), -90),
		MaxLat: math.Min(math.Max(topLeftLat, bottomRightLat), 90),
		MinLon: math.Max(math.Min(topLeftLon, bottomRightLon), -180),
		MaxLon: math.Min(math.Max(topLeftLon, bottomRightLon), 180),
	}
}

// Region returns the projected region
func (p *Projection) Region() Region {
	return p.region
}

// Width returns the drawing surface width
func (p *Projection) Width() float64 {
	return p.width
}

// Height returns the drawing surface height
func (p *Projection) Height() float64 {
	return p.height
}
