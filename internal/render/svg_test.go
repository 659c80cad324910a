package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"h3vector/internal/geo"
)

func TestWriteSVG(t *testing.T) {
	basemap := []*geo.Feature{
		geo.NewLineFeature(geo.FeatureCoastline, []geo.LatLon{{Lat: 0, Lon: 0}, {Lat: 45, Lon: 90}}),
	}
	scene, cells := testScene(t, Options{Selected: "L0:2:4", ShowOutline: true, Basemap: basemap})

	var buf bytes.Buffer
	if err := WriteSVG(&buf, scene); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`id="h3-map-svg"`,
		`width="800"`,
		`height="500"`,
		`viewBox="0 0 800 500"`,
		`d="M 50 450 L 400 450 L 400 50 L 50 50 Z"`,
		`data-h3-index="` + cells[1].String() + `"`,
		`fill="` + SelectedColor + `"`,
		`fill="` + FixedColor + `"`,
		`stroke="#333333"`,
		`stroke-width="0.5"`,
		`opacity="0.7"`,
		`stroke="#ff0000"`,
		`stroke-width="1.5"`,
		`stroke-dasharray="5 3"`,
		`d="M 50 450 L 750 50"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %s", want)
		}
	}

	// two cells, two outline polygons, one basemap line
	if n := strings.Count(out, "<path"); n != 5 {
		t.Errorf("SVG has %d paths, want 5", n)
	}

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestWriteSVGWithoutOutline(t *testing.T) {
	scene, _ := testScene(t, Options{})

	var buf bytes.Buffer
	if err := WriteSVG(&buf, scene); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	if strings.Contains(buf.String(), "stroke-dasharray") {
		t.Errorf("outline group written while disabled")
	}
	if strings.Contains(buf.String(), SelectedColor) {
		t.Errorf("selection fill written with nothing selected")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteSVGReportsWriteError(t *testing.T) {
	scene, _ := testScene(t, Options{})
	if err := WriteSVG(failingWriter{}, scene); err == nil {
		t.Error("WriteSVG succeeded on a failing writer")
	}
}
