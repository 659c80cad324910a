package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"h3vector/internal/grid"
)

// ColorMode selects how hexagons are filled
type ColorMode int

const (
	ColorFixed ColorMode = iota
	ColorRandom
	ColorPentagon
)

// Fill colors
const (
	FixedColor    = "#91bfdb"
	SelectedColor = "#fc8d59"
	PentagonColor = "#ff6b6b"
)

var colorModeNames = [...]string{
	ColorFixed:    "fixed",
	ColorRandom:   "random",
	ColorPentagon: "pentagon",
}

// String returns the mode name used by flags and the environment
func (m ColorMode) String() string {
	if m < 0 || int(m) >= len(colorModeNames) {
		return "unknown"
	}
	return colorModeNames[m]
}

// Next cycles through the modes
func (m ColorMode) Next() ColorMode {
	return (m + 1) % ColorMode(len(colorModeNames))
}

// ParseColorMode parses a mode name
func ParseColorMode(name string) (ColorMode, error) {
	for i, n := range colorModeNames {
		if strings.EqualFold(name, n) {
			return ColorMode(i), nil
		}
	}
	return ColorFixed, fmt.Errorf("unknown color mode %q (want fixed, random or pentagon)", name)
}

// HashHue derives a stable hue in [0, 360) from a cell index. The shift
// truncates to 32 bits while the sum does not, so the accumulator is kept
// wider than the shifted term.
func HashHue(cell grid.CellID) int {
	var acc int64
	for _, ch := range cell.String() {
		acc = int64(ch) + (int64(int32(acc)<<5) - acc)
	}
	hue := int(acc % 360)
	if hue < 0 {
		hue += 360
	}
	return hue
}

// HashColor returns the random-mode fill for a cell
func HashColor(cell grid.CellID) string {
	return colorful.Hsl(float64(HashHue(cell)), 0.7, 0.7).Hex()
}

// CellColor returns the fill of a cell. Selection overrides every mode.
func CellColor(mode ColorMode, cell grid.CellID, pentagon, selected bool) string {
	if selected {
		return SelectedColor
	}

	switch mode {
	case ColorRandom:
		return HashColor(cell)
	case ColorPentagon:
		if pentagon {
			return PentagonColor
		}
	}
	return FixedColor
}
