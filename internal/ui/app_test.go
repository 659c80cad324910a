package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"h3vector/internal/export"
	"h3vector/internal/geo"
	"h3vector/internal/grid/gridtest"
	"h3vector/internal/render"
)

// testBox is drawn with a few large lattice squares at resolution 0
var testBox = geo.NewRegion(geo.CustomName, 0, 0, 90, 45)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	screen.SetSize(120, 40)

	catalog, err := geo.NewCatalog(testBox)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	a := newApp(screen, gridtest.New(), Config{
		Resolution: 0,
		Region:     testBox,
		ColorMode:  render.ColorFixed,
		Catalog:    catalog,
		ExportDir:  t.TempDir(),
		Width:      800,
		Height:     500,
		Padding:    50,
	})
	t.Cleanup(a.cleanup)
	return a, screen
}

func waitForGeneration(t *testing.T, a *App) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for a.state.Snapshot().Loading {
		select {
		case r := <-a.generator.Results():
			a.applyResult(r)
		case <-deadline:
			t.Fatal("generation did not finish")
		}
	}
}

func press(a *App, r rune) bool {
	return a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func click(a *App, x, y int) {
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func screenRow(screen tcell.SimulationScreen, row int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for _, c := range cells[row*width : (row+1)*width] {
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		}
	}
	return b.String()
}

func TestGenerationFillsTheMap(t *testing.T) {
	a, screen := newTestApp(t)
	a.regenerate()
	if !a.state.Snapshot().Loading {
		t.Fatal("not loading after regenerate")
	}
	waitForGeneration(t, a)

	snap := a.state.Snapshot()
	if len(snap.Cells) == 0 || snap.Stats.Count != len(snap.Cells) {
		t.Fatalf("snapshot after generation: %d cells, stats %+v", len(snap.Cells), snap.Stats)
	}
	if a.mapView.Scene() == nil || len(a.mapView.Scene().Hexes) != len(snap.Cells) {
		t.Fatal("scene not built for the generated cells")
	}

	a.render()
	if header := screenRow(screen, 0); !strings.Contains(header, "res 0") || !strings.Contains(header, "region custom") {
		t.Errorf("header = %q", header)
	}
	if footer := screenRow(screen, 39); !strings.Contains(footer, "Approx. Area:") {
		t.Errorf("footer = %q", footer)
	}
}

func TestResolutionKeys(t *testing.T) {
	a, _ := newTestApp(t)
	a.regenerate()
	waitForGeneration(t, a)

	press(a, '1')
	press(a, '2')
	waitForGeneration(t, a)

	snap := a.state.Snapshot()
	if snap.Resolution != 2 {
		t.Fatalf("resolution = %d, want 2", snap.Resolution)
	}
	for _, c := range snap.Cells {
		if !strings.HasPrefix(c.String(), "L2:") {
			t.Fatalf("cell %s from a superseded generation", c)
		}
	}
}

func TestRegionKeys(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, 'g')
	if got := a.state.Snapshot().Region.Name; got != geo.GlobalName {
		t.Errorf("g from the last region = %q, want wrap to global", got)
	}
	press(a, 'G')
	if got := a.state.Snapshot().Region.Name; got != geo.CustomName {
		t.Errorf("G = %q, want custom", got)
	}

	a.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	a.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if got := a.state.Snapshot().Region.Name; got != "australia" {
		t.Errorf("list pick = %q, want australia", got)
	}
	waitForGeneration(t, a)
}

func TestColorAndOutlineKeys(t *testing.T) {
	a, _ := newTestApp(t)
	a.regenerate()
	waitForGeneration(t, a)

	press(a, 'c')
	press(a, 'c')
	if got := a.state.Snapshot().ColorMode; got != render.ColorPentagon {
		t.Errorf("color mode = %v, want pentagon", got)
	}

	press(a, 'o')
	if !a.state.Snapshot().ShowOutline || len(a.mapView.Scene().Outline) == 0 {
		t.Error("outline not shown after o")
	}

	press(a, 'b')
	if a.state.Snapshot().ShowBasemap {
		t.Error("basemap enabled with nothing loaded")
	}
}

func TestClickSelectsAndToggles(t *testing.T) {
	a, _ := newTestApp(t)
	a.regenerate()
	waitForGeneration(t, a)

	// the map center is lon 45.4, lat 21.8
	want := gridtest.LatticeID(21.8, 45.4, 0)
	click(a, 60, 20)

	snap := a.state.Snapshot()
	if snap.Selected != want {
		t.Fatalf("selected %q, want %q", snap.Selected, want)
	}
	if !a.detailView.Visible() {
		t.Fatal("detail panel hidden after selection")
	}
	lines := strings.Join(a.detailView.Lines(), "\n")
	for _, s := range []string{"H3 Index:   " + want.String(), "Resolution: 0", "Pentagon:   No", "Vertices:   4"} {
		if !strings.Contains(lines, s) {
			t.Errorf("detail missing %q in\n%s", s, lines)
		}
	}

	var fill string
	for _, hex := range a.mapView.Scene().Hexes {
		if hex.Cell == want {
			fill = hex.Fill
		}
	}
	if fill != render.SelectedColor {
		t.Errorf("selected fill = %s, want %s", fill, render.SelectedColor)
	}

	click(a, 60, 20)
	if a.state.Snapshot().Selected != "" || a.detailView.Visible() {
		t.Error("second click did not clear the selection")
	}

	click(a, 60, 20)
	a.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if a.state.Snapshot().Selected != "" {
		t.Error("ESC did not clear the selection")
	}
}

func TestRegenerateClearsSelection(t *testing.T) {
	a, _ := newTestApp(t)
	a.regenerate()
	waitForGeneration(t, a)

	click(a, 60, 20)
	press(a, 'r')
	if a.state.Snapshot().Selected != "" || a.detailView.Visible() {
		t.Error("selection survived regeneration")
	}
	waitForGeneration(t, a)
}

func TestExportKeys(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, 'e')
	if a.statusBar.message == "" || !a.statusBar.isError {
		t.Error("export of an empty set did not report an error")
	}

	a.regenerate()
	waitForGeneration(t, a)

	for _, k := range []struct {
		key    rune
		format export.Format
	}{
		{'e', export.FormatGeoJSON},
		{'s', export.FormatSVG},
		{'k', export.FormatKML},
		{'p', export.FormatShapefile},
	} {
		press(a, k.key)
		path := filepath.Join(a.exporter.Dir(), export.FileName(0, geo.CustomName, k.format.Ext()))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%c did not write %s: %v", k.key, path, err)
		}
		if a.statusBar.isError {
			t.Errorf("%c reported %q", k.key, a.statusBar.message)
		}
	}
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t)
	if press(a, 'q') {
		t.Error("q did not stop the loop")
	}
}

func TestFailedGenerationShowsError(t *testing.T) {
	a, screen := newTestApp(t)
	a.provider.(*gridtest.Provider).FailAt = func(lat, lng float64) bool { return true }
	a.regenerate()
	waitForGeneration(t, a)

	snap := a.state.Snapshot()
	if snap.Err == nil || len(snap.Cells) != 0 {
		t.Fatalf("snapshot after failure: err %v, %d cells", snap.Err, len(snap.Cells))
	}
	if a.mapView.Scene() != nil {
		t.Error("scene kept after a failed generation")
	}

	a.render()
	if footer := screenRow(screen, 39); !strings.Contains(footer, "Generation failed") {
		t.Errorf("footer = %q", footer)
	}
}

func TestLoadedBasemapStartsVisible(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	screen.SetSize(120, 40)

	catalog, err := geo.NewCatalog(testBox)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	coast := geo.NewLineFeature(geo.FeatureCoastline, []geo.LatLon{{Lat: 10, Lon: 10}, {Lat: 30, Lon: 80}})

	a := newApp(screen, gridtest.New(), Config{
		Resolution: 0,
		Region:     testBox,
		ColorMode:  render.ColorFixed,
		Catalog:    catalog,
		Basemap:    []*geo.Feature{coast},
		ExportDir:  t.TempDir(),
		Width:      800,
		Height:     500,
		Padding:    50,
	})
	t.Cleanup(a.cleanup)

	if !a.state.Snapshot().ShowBasemap {
		t.Fatal("basemap hidden although features were loaded")
	}

	a.regenerate()
	waitForGeneration(t, a)
	if scene := a.mapView.Scene(); scene == nil || len(scene.Basemap) != 1 {
		t.Fatalf("scene basemap = %v, want the coastline", scene)
	}

	press(a, 'b')
	if a.state.Snapshot().ShowBasemap || len(a.mapView.Scene().Basemap) != 0 {
		t.Error("basemap still shown after b")
	}
}
