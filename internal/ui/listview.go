package ui

import (
	"github.com/gdamore/tcell/v2"

	"h3vector/internal/render"
)

// ListView is a scrollable list of region names. The highlighted entry is
// separate from the active one until it is applied.
type ListView struct {
	items         []string
	active        string
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	x, y          int
	width, height int
}

// NewListView creates a new region list view
func NewListView(x, y, width, height int, items []string) *ListView {
	l := &ListView{
		items: items,
	}
	l.UpdateDimensions(x, y, width, height)
	return l
}

// SetActive marks the region currently shown and moves the highlight to it
func (l *ListView) SetActive(name string) {
	l.active = name
	for i, item := range l.items {
		if item == name {
			l.selectedIndex = i
			break
		}
	}
	l.adjustScroll()
}

// SelectNext moves the highlight down
func (l *ListView) SelectNext() {
	if l.selectedIndex < len(l.items)-1 {
		l.selectedIndex++
		l.adjustScroll()
	}
}

// SelectPrev moves the highlight up
func (l *ListView) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.adjustScroll()
	}
}

// adjustScroll keeps the highlighted entry visible
func (l *ListView) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}

	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// GetSelected returns the highlighted name, or "" for an empty list
func (l *ListView) GetSelected() string {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.items) {
		return l.items[l.selectedIndex]
	}
	return ""
}

// Draw renders the list view to the screen
func (l *ListView) Draw(screen tcell.Screen) {
	clearPanel(screen, l.x, l.y, l.width, l.height)
	drawBorder(screen, l.x, l.y, l.width, l.height)
	drawTitle(screen, l.x, l.y, l.width, "Regions")

	visibleCount := min(l.maxVisible, len(l.items)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		index := l.scrollOffset + i
		name := l.items[index]

		marker := "  "
		if name == l.active {
			marker = "▸ "
		}
		text := marker + name

		style := render.StyleLabel
		if index == l.selectedIndex {
			style = render.StyleListSelected
		}

		row := []rune(text)
		for j := 0; j < l.width-2; j++ {
			ch := ' '
			if j < len(row) {
				ch = row[j]
			}
			screen.SetContent(l.x+1+j, l.y+1+i, ch, nil, style)
		}
	}

	if len(l.items) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StyleLabel)
	}
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = height - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.adjustScroll()
}
