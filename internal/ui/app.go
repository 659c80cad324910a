package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"h3vector/internal/debug"
	"h3vector/internal/export"
	"h3vector/internal/geo"
	"h3vector/internal/grid"
	"h3vector/internal/render"
	"h3vector/internal/session"
)

const (
	listWidth    = 22
	detailWidth  = 46
	detailHeight = 8
)

// Config holds the start-up settings of the interactive map
type Config struct {
	Resolution int
	Region     geo.Region
	ColorMode  render.ColorMode
	Catalog    *geo.Catalog
	Basemap    []*geo.Feature
	ExportDir  string
	Outline    bool

	// drawing surface the projection and the SVG export use
	Width   float64
	Height  float64
	Padding float64
}

// App is the main application controller
type App struct {
	screen    tcell.Screen
	provider  grid.Provider
	catalog   *geo.Catalog
	basemap   []*geo.Feature
	state     *session.State
	generator *session.Generator
	exporter  *export.Writer

	mapView    *MapView
	listView   *ListView
	detailView *DetailView
	statusBar  *StatusBar

	mouseDown bool
	quit      chan struct{}
}

// NewApp creates a new application on the terminal
func NewApp(provider grid.Provider, cfg Config) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	return newApp(screen, provider, cfg), nil
}

// newApp wires the views onto an initialized screen
func newApp(screen tcell.Screen, provider grid.Provider, cfg Config) *App {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.Clear()

	width, height := screen.Size()

	a := &App{
		screen:     screen,
		provider:   provider,
		catalog:    cfg.Catalog,
		basemap:    cfg.Basemap,
		state:      session.NewState(cfg.Resolution, cfg.Region, cfg.ColorMode),
		generator:  session.NewGenerator(provider),
		exporter:   export.NewWriter(cfg.ExportDir, provider),
		mapView:    NewMapView(0, 1, width, height-2, cfg.Region, cfg.Width, cfg.Height, cfg.Padding),
		listView:   NewListView(0, 0, listWidth, 3, cfg.Catalog.Names()),
		detailView: NewDetailView(0, 0, detailWidth, detailHeight),
		statusBar:  NewStatusBar(width, height),
		quit:       make(chan struct{}),
	}
	a.listView.SetActive(cfg.Region.Name)
	if len(cfg.Basemap) > 0 {
		a.state.ToggleBasemap()
	}
	if cfg.Outline {
		a.state.ToggleOutline()
	}
	a.layout(width, height)

	return a
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	events := make(chan tcell.Event, 32)
	go a.screen.ChannelEvents(events, a.quit)

	a.regenerate()
	a.render()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
			a.render()

		case r := <-a.generator.Results():
			a.applyResult(r)
			a.render()

		case <-ticker.C:
			if a.state.Snapshot().Loading {
				a.statusBar.Tick()
				a.render()
			}
		}
	}
}

// regenerate starts a new generation for the current settings. Any
// generation still running is cancelled and its result will be ignored.
func (a *App) regenerate() {
	params := a.state.Params()
	a.mapView.SetRegion(params.Region)
	a.detailView.SetDetail(nil, nil)
	a.statusBar.ClearMessage()

	gen := a.generator.Start(params)
	a.state.BeginGeneration(gen)
	debug.Log("generation %d started: res %d region %s", gen, params.Resolution, params.Region.Name)
}

// applyResult installs a finished generation if it is still wanted
func (a *App) applyResult(r session.Result) {
	if !a.state.Apply(r) {
		debug.Log("generation %d discarded, waiting for a newer one", r.Generation)
		return
	}
	a.rebuildScene()
}

// rebuildScene redraws the scene for the current cells and options
func (a *App) rebuildScene() {
	snap := a.state.Snapshot()
	if snap.Err != nil || len(snap.Cells) == 0 {
		a.mapView.SetScene(nil)
		return
	}

	opts := render.Options{
		ColorMode:   snap.ColorMode,
		Selected:    snap.Selected,
		ShowOutline: snap.ShowOutline,
	}
	if snap.ShowBasemap {
		opts.Basemap = a.basemap
	}

	scene, err := render.BuildScene(a.provider, snap.Cells, a.mapView.Projection(), opts)
	if err != nil {
		debug.L().Error("scene failed", "cells", len(snap.Cells), "err", err)
		a.statusBar.SetMessage("Render failed: "+err.Error(), true)
		a.mapView.SetScene(nil)
		return
	}
	a.mapView.SetScene(scene)
}

// render renders the current view to the screen
func (a *App) render() {
	a.screen.Clear()

	snap := a.state.Snapshot()

	a.mapView.Draw(a.screen)
	a.listView.Draw(a.screen)
	a.detailView.Draw(a.screen)
	a.statusBar.Draw(a.screen, snap)

	a.screen.Show()
}

// handleEvent processes keyboard and mouse events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !a.mouseDown {
			x, y := ev.Position()
			a.handleClick(x, y)
		}
		a.mouseDown = pressed

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.clearSelection()

	case tcell.KeyUp:
		a.listView.SelectPrev()

	case tcell.KeyDown:
		a.listView.SelectNext()

	case tcell.KeyEnter:
		if name := a.listView.GetSelected(); name != "" {
			a.setRegion(name)
		}

	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r >= '0' && r <= '8':
			a.setResolution(int(r - '0'))

		case r == 'q' || r == 'Q':
			close(a.quit)
			return false

		case r == 'g':
			a.setRegion(a.catalog.Next(a.state.Snapshot().Region.Name, 1).Name)

		case r == 'G':
			a.setRegion(a.catalog.Next(a.state.Snapshot().Region.Name, -1).Name)

		case r == 'c' || r == 'C':
			a.state.SetColorMode(a.state.Snapshot().ColorMode.Next())
			a.rebuildScene()

		case r == 'o' || r == 'O':
			a.state.ToggleOutline()
			a.rebuildScene()

		case r == 'b' || r == 'B':
			if len(a.basemap) == 0 {
				a.statusBar.SetMessage("No basemap loaded (run with -basemap)", true)
				break
			}
			a.state.ToggleBasemap()
			a.rebuildScene()

		case r == 'r' || r == 'R':
			a.regenerate()

		case r == 'e' || r == 'E':
			a.export(export.FormatGeoJSON)

		case r == 's' || r == 'S':
			a.export(export.FormatSVG)

		case r == 'k' || r == 'K':
			a.export(export.FormatKML)

		case r == 'p' || r == 'P':
			a.export(export.FormatShapefile)

		case r == 'x' || r == 'X':
			a.clearSelection()
		}
	}

	return true
}

func (a *App) setResolution(resolution int) {
	if resolution == a.state.Snapshot().Resolution {
		return
	}
	if err := a.state.SetResolution(resolution); err != nil {
		a.statusBar.SetMessage(err.Error(), true)
		return
	}
	a.regenerate()
}

func (a *App) setRegion(name string) {
	region, err := a.catalog.Lookup(name)
	if err != nil {
		a.statusBar.SetMessage(err.Error(), true)
		return
	}
	a.state.SetRegion(region)
	a.listView.SetActive(region.Name)
	a.regenerate()
}

// handleClick toggles the selection of the cell under the pointer
func (a *App) handleClick(x, y int) {
	if a.state.Snapshot().Loading || !a.mapView.Contains(x, y) {
		return
	}

	cell, ok := a.mapView.CellAt(x, y)
	if !ok {
		if lat, lng, ok := a.mapView.LatLngAt(x, y); ok {
			a.statusBar.SetMessage(fmt.Sprintf("No hexagon at %.4f, %.4f", lat, lng), false)
		}
		return
	}

	a.statusBar.ClearMessage()
	if selected := a.state.Select(cell); selected == "" {
		a.detailView.SetDetail(nil, nil)
	} else {
		detail, err := session.Describe(a.provider, selected)
		if err != nil {
			debug.L().Warn("detail lookup failed", "cell", selected, "err", err)
			a.detailView.SetDetail(nil, err)
		} else {
			a.detailView.SetDetail(&detail, nil)
		}
	}
	a.rebuildScene()
}

func (a *App) clearSelection() {
	if !a.state.Snapshot().HasSelection() {
		return
	}
	a.state.ClearSelection()
	a.detailView.SetDetail(nil, nil)
	a.rebuildScene()
}

// export writes the current set in one format and reports the outcome
func (a *App) export(format export.Format) {
	snap := a.state.Snapshot()
	if snap.Loading {
		a.statusBar.SetMessage("Wait for generation to finish before exporting", true)
		return
	}

	path, err := a.exporter.Export(format, export.Job{
		Cells:      snap.Cells,
		Resolution: snap.Resolution,
		Region:     snap.Region.Name,
		Scene:      a.mapView.Scene(),
	})
	if err != nil {
		debug.L().Error("export failed", "format", format, "err", err)
		a.statusBar.SetMessage("Export failed: "+err.Error(), true)
		return
	}
	a.statusBar.SetMessage("Exported "+path, false)
}

// layout places every view for a screen size
func (a *App) layout(width, height int) {
	a.mapView.UpdateDimensions(0, 1, width, max(height-2, 0))

	listHeight := min(a.catalog.Len()+2, max(height-2, 3))
	a.listView.UpdateDimensions(0, height-1-listHeight, listWidth, listHeight)

	a.detailView.UpdateDimensions(max(width-detailWidth, 0), 1, detailWidth, detailHeight)
	a.statusBar.UpdateDimensions(width, height)
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()
	a.layout(width, height)
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	if a.generator != nil {
		a.generator.Close()
	}

	if a.screen != nil {
		a.screen.Fini()
	}
}
