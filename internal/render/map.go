package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"h3vector/internal/geo"
)

// Dash pattern of the outline, in character steps
const (
	dashOn  = 5
	dashOff = 3
)

// minEdgeWidth is the narrowest hexagon, in columns, that gets its edges drawn
const minEdgeWidth = 6

// MapRenderer rasterizes a scene onto a character canvas
type MapRenderer struct {
	scene  *Scene
	canvas *Canvas
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(scene *Scene, canvas *Canvas) *MapRenderer {
	return &MapRenderer{
		scene:  scene,
		canvas: canvas,
	}
}

// scale returns the columns and rows per drawing unit
func (m *MapRenderer) scale() (sx, sy float64) {
	if m.scene == nil || m.scene.Width <= 0 || m.scene.Height <= 0 {
		return 0, 0
	}
	return float64(m.canvas.Width()) / m.scene.Width, float64(m.canvas.Height()) / m.scene.Height
}

// ToScene converts a canvas cell to the drawing point at its center
func (m *MapRenderer) ToScene(col, row int) (x, y float64) {
	sx, sy := m.scale()
	if sx == 0 || sy == 0 {
		return 0, 0
	}
	return (float64(col) + 0.5) / sx, (float64(row) + 0.5) / sy
}

// ToCanvas converts a drawing point to the canvas cell containing it
func (m *MapRenderer) ToCanvas(p geo.Point) (col, row int) {
	sx, sy := m.scale()
	return int(math.Floor(p.X * sx)), int(math.Floor(p.Y * sy))
}

// Render draws the basemap, the hexagons and the outline, in that order
func (m *MapRenderer) Render() {
	m.canvas.Clear()
	if m.scene == nil {
		return
	}

	for _, line := range m.scene.Basemap {
		m.RenderBasemapLine(line)
	}

	for i := range m.scene.Hexes {
		m.RenderHex(&m.scene.Hexes[i])
	}

	for _, polygon := range m.scene.Outline {
		for _, ring := range polygon {
			m.renderOutlineRing(ring)
		}
	}
}

// RenderBasemapLine draws one basemap polyline
func (m *MapRenderer) RenderBasemapLine(line BasemapLine) {
	style := GetStyleForFeature(line.Type)
	char := GetCharForFeature(line.Type)

	for i := 0; i < len(line.Points)-1; i++ {
		x0, y0 := m.ToCanvas(line.Points[i])
		x1, y1 := m.ToCanvas(line.Points[i+1])
		m.DrawLine(x0, y0, x1, y1, char, style)
	}
}

// RenderHex fills a hexagon and, when it is wide enough, draws its edges.
// Cells smaller than one character still paint the character holding
// their first vertex so that nothing sampled disappears.
func (m *MapRenderer) RenderHex(hex *HexPath) {
	if len(hex.Points) == 0 {
		return
	}

	fill := FillStyle(hex.Fill)
	minCol, minRow := m.ToCanvas(geo.Point{X: hex.bound.Min[0], Y: hex.bound.Min[1]})
	maxCol, maxRow := m.ToCanvas(geo.Point{X: hex.bound.Max[0], Y: hex.bound.Max[1]})
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, m.canvas.Width()-1), min(maxRow, m.canvas.Height()-1)

	painted := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			x, y := m.ToScene(col, row)
			if hex.Contains(x, y) {
				m.canvas.Set(col, row, ' ', fill)
				painted = true
			}
		}
	}
	if !painted {
		col, row := m.ToCanvas(hex.Points[0])
		m.canvas.Set(col, row, ' ', fill)
		return
	}

	if maxCol-minCol+1 < minEdgeWidth {
		return
	}
	for i := range hex.Points {
		x0, y0 := m.ToCanvas(hex.Points[i])
		x1, y1 := m.ToCanvas(hex.Points[(i+1)%len(hex.Points)])
		m.line(x0, y0, x1, y1, func(x, y int) {
			m.canvas.Set(x, y, '·', StyleHexEdge.Background(m.canvas.Background(x, y)))
		})
	}
}

// renderOutlineRing draws a closed ring dashed, keeping the fill underneath
func (m *MapRenderer) renderOutlineRing(ring []geo.Point) {
	step := 0
	for i := range ring {
		x0, y0 := m.ToCanvas(ring[i])
		x1, y1 := m.ToCanvas(ring[(i+1)%len(ring)])
		m.line(x0, y0, x1, y1, func(x, y int) {
			if step%(dashOn+dashOff) < dashOn {
				m.canvas.Set(x, y, '•', StyleOutline.Background(m.canvas.Background(x, y)))
			}
			step++
		})
	}
}

// DrawLine draws a line of one character between two canvas cells
func (m *MapRenderer) DrawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	m.line(x0, y0, x1, y1, func(x, y int) {
		m.canvas.Set(x, y, char, style)
	})
}

// line walks Bresenham's line from (x0, y0) to (x1, y1) inclusive
func (m *MapRenderer) line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	// Points near the poles project far off the canvas
	limit := 4 * (m.canvas.Width() + m.canvas.Height())
	if dx > limit || dy > limit {
		return
	}

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		plot(x0, y0)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// UpdateScene replaces the scene being drawn
func (m *MapRenderer) UpdateScene(scene *Scene) {
	m.scene = scene
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}
