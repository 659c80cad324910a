package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"h3vector/internal/render"
	"h3vector/internal/session"
)

// DetailView displays the selected cell
type DetailView struct {
	detail        *session.CellDetail
	err           error
	x, y          int
	width, height int
}

// NewDetailView creates a new detail view
func NewDetailView(x, y, width, height int) *DetailView {
	return &DetailView{
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

// SetDetail sets the cell to display; nil hides the panel
func (d *DetailView) SetDetail(detail *session.CellDetail, err error) {
	d.detail = detail
	d.err = err
}

// Visible reports whether there is anything to show
func (d *DetailView) Visible() bool {
	return d.detail != nil || d.err != nil
}

// Lines returns the text rows of the panel
func (d *DetailView) Lines() []string {
	if d.err != nil {
		return []string{"Lookup failed:", d.err.Error()}
	}
	if d.detail == nil {
		return nil
	}

	pentagon := "No"
	if d.detail.Pentagon {
		pentagon = "Yes"
	}
	return []string{
		fmt.Sprintf("H3 Index:   %s", d.detail.Index),
		fmt.Sprintf("Resolution: %d", d.detail.Resolution),
		fmt.Sprintf("Pentagon:   %s", pentagon),
		fmt.Sprintf("Center:     %s", d.detail.CenterString()),
		fmt.Sprintf("Vertices:   %d", d.detail.Vertices),
	}
}

// Draw renders the detail view to the screen
func (d *DetailView) Draw(screen tcell.Screen) {
	if !d.Visible() {
		return
	}

	clearPanel(screen, d.x, d.y, d.width, d.height)
	drawBorder(screen, d.x, d.y, d.width, d.height)
	drawTitle(screen, d.x, d.y, d.width, "Hexagon Details")

	for i, line := range d.Lines() {
		if d.y+1+i >= d.y+d.height-1 {
			break
		}
		drawText(screen, d.x+2, d.y+1+i, d.width-4, line, render.StyleLabel)
	}

	instructions := "x/ESC to close"
	drawText(screen, d.x+(d.width-len(instructions))/2, d.y+d.height-1, d.width, instructions, render.StyleLabel.Dim(true))
}

// UpdateDimensions updates the view dimensions
func (d *DetailView) UpdateDimensions(x, y, width, height int) {
	d.x = x
	d.y = y
	d.width = width
	d.height = height
}
