// Package session holds the interactive application state and runs cell
// generation off the UI goroutine.
package session

import (
	"fmt"

	"h3vector/internal/geo"
	"h3vector/internal/grid"
	"h3vector/internal/render"
	"h3vector/internal/stats"
)

// Params are the inputs of one generation
type Params struct {
	Resolution int
	Region     geo.Region
}

// Result is the outcome of one generation. On failure Cells and Stats are empty.
type Result struct {
	Generation uint64
	Params     Params
	Cells      []grid.CellID
	Stats      stats.Stats
	Err        error
}

// Snapshot is a read-only view of the state. The Cells slice is shared and
// must not be modified.
type Snapshot struct {
	Resolution  int
	Region      geo.Region
	ColorMode   render.ColorMode
	ShowOutline bool
	ShowBasemap bool

	Cells    []grid.CellID
	Stats    stats.Stats
	Selected grid.CellID
	Loading  bool
	Err      error

	// Generation is the id of the last applied result
	Generation uint64
}

// HasSelection reports whether a cell is selected
func (s Snapshot) HasSelection() bool {
	return s.Selected != ""
}

// State is the mutable application state. It is owned by the UI goroutine
// and is not safe for concurrent use.
type State struct {
	snap    Snapshot
	pending uint64
}

// NewState creates the initial state
func NewState(resolution int, region geo.Region, mode render.ColorMode) *State {
	return &State{
		snap: Snapshot{
			Resolution: resolution,
			Region:     region,
			ColorMode:  mode,
		},
	}
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	return s.snap
}

// Params returns the generation inputs for the current settings
func (s *State) Params() Params {
	return Params{Resolution: s.snap.Resolution, Region: s.snap.Region}
}

// SetResolution changes the resolution; the caller regenerates
func (s *State) SetResolution(resolution int) error {
	if resolution < 0 || resolution > grid.MaxResolution {
		return fmt.Errorf("%w: %d", grid.ErrInvalidResolution, resolution)
	}
	s.snap.Resolution = resolution
	return nil
}

// SetRegion changes the region; the caller regenerates
func (s *State) SetRegion(region geo.Region) {
	s.snap.Region = region
}

// SetColorMode changes how cells are filled
func (s *State) SetColorMode(mode render.ColorMode) {
	s.snap.ColorMode = mode
}

// ToggleOutline flips the outline and returns the new setting
func (s *State) ToggleOutline() bool {
	s.snap.ShowOutline = !s.snap.ShowOutline
	return s.snap.ShowOutline
}

// ToggleBasemap flips the basemap and returns the new setting
func (s *State) ToggleBasemap() bool {
	s.snap.ShowBasemap = !s.snap.ShowBasemap
	return s.snap.ShowBasemap
}

// Select toggles the selection: selecting the selected cell clears it.
// Selection is ignored while a generation is running.
func (s *State) Select(cell grid.CellID) grid.CellID {
	if s.snap.Loading {
		return s.snap.Selected
	}
	if s.snap.Selected == cell {
		s.snap.Selected = ""
	} else {
		s.snap.Selected = cell
	}
	return s.snap.Selected
}

// ClearSelection drops the selected cell
func (s *State) ClearSelection() {
	s.snap.Selected = ""
}

// BeginGeneration marks generation gen as the one whose result will be
// accepted. The selection is cleared and the state shows as loading.
func (s *State) BeginGeneration(gen uint64) {
	s.pending = gen
	s.snap.Loading = true
	s.snap.Selected = ""
}

// Apply installs a generation result. Results of any generation other than
// the latest begun are discarded and Apply returns false.
func (s *State) Apply(r Result) bool {
	if r.Generation != s.pending {
		return false
	}

	s.snap.Loading = false
	s.snap.Generation = r.Generation
	s.snap.Err = r.Err
	if r.Err != nil {
		s.snap.Cells = nil
		s.snap.Stats = stats.Stats{}
		return true
	}

	s.snap.Cells = r.Cells
	s.snap.Stats = r.Stats
	return true
}
