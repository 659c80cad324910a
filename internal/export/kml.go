package export

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"h3vector/internal/grid"
)

const kmlCoordFormat = "%.10f,%.10f,0"

// KML renders cells as a KML document with one polygon placemark per cell
func KML(provider grid.Provider, cells []grid.CellID, name string) (string, error) {
	var placemarks strings.Builder

	for _, cell := range cells {
		ring, err := provider.BoundaryGeoJSON(cell)
		if err != nil {
			return "", fmt.Errorf("boundary of %s: %w", cell, err)
		}
		resolution, err := provider.Resolution(cell)
		if err != nil {
			return "", fmt.Errorf("resolution of %s: %w", cell, err)
		}
		pentagon, err := provider.IsPentagon(cell)
		if err != nil {
			return "", fmt.Errorf("pentagon check for %s: %w", cell, err)
		}

		placemarks.WriteString(fmt.Sprintf(`
        <Placemark>
            <name>%s</name>
            <ExtendedData>
                <Data name="%s"><value>%d</value></Data>
                <Data name="%s"><value>%t</value></Data>
            </ExtendedData>
            <Polygon><outerBoundaryIs><LinearRing><coordinates>%s</coordinates></LinearRing></outerBoundaryIs></Polygon>
        </Placemark>`,
			escapeXML(cell.String()),
			PropResolution, resolution,
			PropIsPentagon, pentagon,
			kmlCoordinates(ring)))
	}

	kml := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
    <Document>
        <name>%s</name>%s
    </Document>
</kml>`, escapeXML(name), placemarks.String())

	return kml, nil
}

func kmlCoordinates(ring orb.Ring) string {
	coords := make([]string, len(ring))
	for i, p := range ring {
		coords[i] = fmt.Sprintf(kmlCoordFormat, p.Lon(), p.Lat())
	}
	return strings.Join(coords, " ")
}

// escapeXML escapes XML special characters in a string.
func escapeXML(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	).Replace(s)
}
