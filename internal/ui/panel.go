package ui

import (
	"github.com/gdamore/tcell/v2"

	"h3vector/internal/render"
)

// clearPanel blanks the inside of a panel so the map does not show through
func clearPanel(screen tcell.Screen, x, y, width, height int) {
	for row := y + 1; row < y+height-1; row++ {
		for col := x + 1; col < x+width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

// drawBorder draws a panel border
func drawBorder(screen tcell.Screen, x, y, width, height int) {
	style := render.StyleLabel

	screen.SetContent(x, y, '┌', nil, style)
	screen.SetContent(x+width-1, y, '┐', nil, style)
	screen.SetContent(x, y+height-1, '└', nil, style)
	screen.SetContent(x+width-1, y+height-1, '┘', nil, style)

	for i := 1; i < width-1; i++ {
		screen.SetContent(x+i, y, '─', nil, style)
		screen.SetContent(x+i, y+height-1, '─', nil, style)
	}

	for i := 1; i < height-1; i++ {
		screen.SetContent(x, y+i, '│', nil, style)
		screen.SetContent(x+width-1, y+i, '│', nil, style)
	}
}

// drawTitle centers a title on the top border
func drawTitle(screen tcell.Screen, x, y, width int, title string) {
	drawText(screen, x+(width-len(title))/2, y, width, title, render.StyleTitle)
}

// drawText draws at most maxWidth runes of text
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= maxWidth {
			break
		}
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
