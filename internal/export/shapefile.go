package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"h3vector/internal/grid"
)

// Attribute columns of the shapefile, in order
var shapefileFields = []shp.Field{
	shp.StringField("H3INDEX", 16),
	shp.NumberField("RES", 2),
	shp.NumberField("PENTAGON", 1),
}

// Shapefile writes cells as a polygon shapefile at path (.shp, with the
// .shx and .dbf beside it). Outer rings are written clockwise.
func Shapefile(provider grid.Provider, cells []grid.CellID, path string) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = writeShapes(w, provider, cells)
	w.Close()

	// go-shp v0.1.1 names the attribute table "<base>dbf", without the dot
	base := path
	if strings.HasSuffix(strings.ToLower(path), ".shp") {
		base = path[:len(path)-len(".shp")]
	}
	if err != nil {
		os.Remove(base + "dbf")
		return err
	}
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return fmt.Errorf("failed to place attribute table: %w", err)
	}
	return nil
}

// writeShapes writes one polygon and its attribute row per cell
func writeShapes(w *shp.Writer, provider grid.Provider, cells []grid.CellID) error {
	if err := w.SetFields(shapefileFields); err != nil {
		return fmt.Errorf("failed to set fields: %w", err)
	}

	for _, cell := range cells {
		ring, err := provider.BoundaryGeoJSON(cell)
		if err != nil {
			return fmt.Errorf("boundary of %s: %w", cell, err)
		}
		resolution, err := provider.Resolution(cell)
		if err != nil {
			return fmt.Errorf("resolution of %s: %w", cell, err)
		}
		pentagon, err := provider.IsPentagon(cell)
		if err != nil {
			return fmt.Errorf("pentagon check for %s: %w", cell, err)
		}

		polygon := shp.Polygon(*shp.NewPolyLine([][]shp.Point{shapefileRing(ring)}))
		row := int(w.Write(&polygon))

		flag := 0
		if pentagon {
			flag = 1
		}
		for field, value := range []interface{}{cell.String(), resolution, flag} {
			if err := w.WriteAttribute(row, field, value); err != nil {
				return fmt.Errorf("attribute %d of %s: %w", field, cell, err)
			}
		}
	}

	return nil
}

// shapefileRing converts a closed lng/lat ring to clockwise shapefile points
func shapefileRing(ring orb.Ring) []shp.Point {
	r := ring.Clone()
	if r.Orientation() == orb.CCW {
		r.Reverse()
	}

	points := make([]shp.Point, len(r))
	for i, p := range r {
		points[i] = shp.Point{X: p.Lon(), Y: p.Lat()}
	}
	return points
}
