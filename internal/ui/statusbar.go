package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"h3vector/internal/render"
	"h3vector/internal/session"
)

var spinnerFrames = []rune{'|', '/', '-', '\\'}

const helpText = "0-8 res  g/G region  ↑↓⏎ list  c color  o outline  b basemap  r regen  e/s/k/p export  x clear  q quit"

// StatusBar draws the settings header and the statistics footer
type StatusBar struct {
	width  int
	height int
	frame  int

	message string
	isError bool
}

// NewStatusBar creates a status bar for a screen of the given size
func NewStatusBar(width, height int) *StatusBar {
	return &StatusBar{width: width, height: height}
}

// SetMessage shows a transient message in place of the statistics
func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.message = msg
	s.isError = isError
}

// ClearMessage removes the transient message
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.isError = false
}

// Tick advances the loading spinner
func (s *StatusBar) Tick() {
	s.frame++
}

// Header returns the top line text
func (s *StatusBar) Header(snap session.Snapshot) string {
	outline := "off"
	if snap.ShowOutline {
		outline = "on"
	}
	return fmt.Sprintf(" H3 Vector  res %d  region %s  color %s  outline %s   %s",
		snap.Resolution, snap.Region.Name, snap.ColorMode, outline, helpText)
}

// Footer returns the bottom line text and whether it reports an error
func (s *StatusBar) Footer(snap session.Snapshot) (string, bool) {
	switch {
	case snap.Loading:
		return fmt.Sprintf(" %c Generating hexagons...", spinnerFrames[s.frame%len(spinnerFrames)]), false
	case s.message != "":
		return " " + s.message, s.isError
	case snap.Err != nil:
		return " Generation failed: " + snap.Err.Error(), true
	case len(snap.Cells) == 0:
		return " No hexagons to display", false
	}
	return " " + snap.Stats.Summary(), false
}

// Draw renders the header on the first row and the footer on the last
func (s *StatusBar) Draw(screen tcell.Screen, snap session.Snapshot) {
	s.drawLine(screen, 0, s.Header(snap), render.StyleStatus)

	footer, isError := s.Footer(snap)
	style := render.StyleStatus
	if isError {
		style = render.StyleStatusError
	} else if snap.Loading {
		style = render.StyleLoading
	}
	s.drawLine(screen, s.height-1, footer, style)
}

func (s *StatusBar) drawLine(screen tcell.Screen, y int, text string, style tcell.Style) {
	runes := []rune(text)
	if len(runes) < s.width {
		text += strings.Repeat(" ", s.width-len(runes))
	}
	drawText(screen, 0, y, s.width, text, style)
}

// UpdateDimensions updates the bar for a resized screen
func (s *StatusBar) UpdateDimensions(width, height int) {
	s.width = width
	s.height = height
}
