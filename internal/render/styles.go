package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"h3vector/internal/geo"
)

var (
	StyleCoastline    = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	StyleBorder       = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	StyleHexEdge      = tcell.StyleDefault.Foreground(HexColor(HexStroke))
	StyleOutline      = tcell.StyleDefault.Foreground(HexColor(OutlineStroke)).Bold(true)
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleTitle        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	StyleStatus       = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	StyleStatusError  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
	StyleLoading      = StyleStatus.Foreground(tcell.ColorOlive).Bold(true)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// HexColor converts a "#rrggbb" color to a terminal color; bad input maps to the default color
func HexColor(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// FillStyle returns the style painting a cell interior in a fill color
func FillStyle(fill string) tcell.Style {
	return tcell.StyleDefault.Background(HexColor(fill))
}

// GetStyleForFeature returns the style for a basemap layer
func GetStyleForFeature(ftype geo.FeatureType) tcell.Style {
	switch ftype {
	case geo.FeatureCoastline:
		return StyleCoastline
	case geo.FeatureBorder:
		return StyleBorder
	default:
		return tcell.StyleDefault
	}
}

// GetCharForFeature returns the character a basemap layer is drawn with
func GetCharForFeature(ftype geo.FeatureType) rune {
	switch ftype {
	case geo.FeatureCoastline:
		return '~'
	case geo.FeatureBorder:
		return '-'
	default:
		return '·'
	}
}
