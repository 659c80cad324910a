package render

import (
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// SVGID is the id of the root svg element
const SVGID = "h3-map-svg"

// Hexagon and outline presentation attributes
const (
	HexStroke        = "#333333"
	HexStrokeWidth   = "0.5"
	HexOpacity       = "0.7"
	OutlineStroke    = "#ff0000"
	OutlineWidth     = "1.5"
	OutlineDashArray = "5 3"
	BasemapStroke    = "#9e9e9e"
)

// errWriter remembers the first write error; svgo does not report them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG writes the scene as a standalone SVG document
func WriteSVG(w io.Writer, scene *Scene) error {
	ew := &errWriter{w: w}
	width := int(scene.Width)
	height := int(scene.Height)

	canvas := svg.New(ew)
	canvas.Start(width, height,
		fmt.Sprintf(`id="%s"`, SVGID),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, formatFloat(scene.Width), formatFloat(scene.Height)))

	if len(scene.Basemap) > 0 {
		canvas.Group(`fill="none"`, attr("stroke", BasemapStroke), `stroke-width="0.5"`)
		for _, line := range scene.Basemap {
			if len(line.Points) < 2 {
				continue
			}
			canvas.Path(polylineData(line.Points))
		}
		canvas.Gend()
	}

	for _, hex := range scene.Hexes {
		canvas.Path(PathData(hex.Points),
			attr("data-h3-index", hex.Cell.String()),
			attr("fill", hex.Fill),
			attr("stroke", HexStroke),
			attr("stroke-width", HexStrokeWidth),
			attr("opacity", HexOpacity))
	}

	if len(scene.Outline) > 0 {
		canvas.Group(
			`fill="none"`,
			attr("stroke", OutlineStroke),
			attr("stroke-width", OutlineWidth),
			attr("stroke-dasharray", OutlineDashArray))
		for _, polygon := range scene.Outline {
			canvas.Path(polygonPathData(polygon))
		}
		canvas.Gend()
	}

	canvas.End()
	return ew.err
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, value)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
