package ui

import (
	"github.com/gdamore/tcell/v2"

	"h3vector/internal/debug"
	"h3vector/internal/geo"
	"h3vector/internal/grid"
	"h3vector/internal/render"
)

// MapView displays the rasterized scene in a rectangle of the screen
type MapView struct {
	renderer   *render.MapRenderer
	projection *geo.Projection
	canvas     *render.Canvas
	scene      *render.Scene
	dirty      bool

	x, y          int
	width, height int

	// drawing surface the projection targets
	drawWidth  float64
	drawHeight float64
	padding    float64
}

// NewMapView creates a new map view
func NewMapView(x, y, width, height int, region geo.Region, drawWidth, drawHeight, padding float64) *MapView {
	canvas := render.NewCanvas(width, height)

	return &MapView{
		renderer:   render.NewMapRenderer(nil, canvas),
		projection: geo.NewProjection(region, drawWidth, drawHeight, padding),
		canvas:     canvas,
		dirty:      true,
		x:          x,
		y:          y,
		width:      width,
		height:     height,
		drawWidth:  drawWidth,
		drawHeight: drawHeight,
		padding:    padding,
	}
}

// SetRegion replaces the projection for a new region
func (m *MapView) SetRegion(region geo.Region) {
	m.projection = geo.NewProjection(region, m.drawWidth, m.drawHeight, m.padding)

	bounds := m.projection.GetBounds()
	debug.Log("Map projection for %s, visible bounds %s", region.Name, bounds)
}

// Projection returns the current projection
func (m *MapView) Projection() *geo.Projection {
	return m.projection
}

// SetScene replaces the scene being displayed
func (m *MapView) SetScene(scene *render.Scene) {
	m.scene = scene
	m.renderer.UpdateScene(scene)
	m.dirty = true
}

// Scene returns the scene being displayed, possibly nil
func (m *MapView) Scene() *render.Scene {
	return m.scene
}

// Draw renders the map view to the screen
func (m *MapView) Draw(screen tcell.Screen) {
	if m.dirty {
		m.renderer.Render()
		m.dirty = false
	}
	m.canvas.Blit(screen, m.x, m.y)
}

// Contains reports whether a screen position is inside the map
func (m *MapView) Contains(sx, sy int) bool {
	return sx >= m.x && sx < m.x+m.width && sy >= m.y && sy < m.y+m.height
}

// CellAt returns the cell drawn at a screen position
func (m *MapView) CellAt(sx, sy int) (grid.CellID, bool) {
	if m.scene == nil || !m.Contains(sx, sy) {
		return "", false
	}
	x, y := m.renderer.ToScene(sx-m.x, sy-m.y)
	return m.scene.HitTest(x, y)
}

// LatLngAt returns the geographic position under a screen position
func (m *MapView) LatLngAt(sx, sy int) (lat, lng float64, ok bool) {
	if m.scene == nil || !m.Contains(sx, sy) {
		return 0, 0, false
	}
	x, y := m.renderer.ToScene(sx-m.x, sy-m.y)
	lat, lng = m.projection.Unproject(x, y)
	return lat, lng, true
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (m *MapView) UpdateDimensions(x, y, width, height int) {
	m.x = x
	m.y = y
	m.width = width
	m.height = height

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
	m.dirty = true
}
