package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a palette color. The zero value is the terminal default; the
// eight named colors follow, and any value above ColorWhite is an index into
// the 256-color palette offset by one.
type Color uint16

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = map[string]Color{
	"default": ColorDefault,
	"black":   ColorBlack,
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
}

// Palette returns the color for a 256-color palette index
func Palette(index uint8) Color {
	return Color(index) + 1
}

// Index returns the palette index, or -1 for the default color
func (c Color) Index() int {
	return int(c) - 1
}

// String returns the color name or palette index
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return strconv.Itoa(c.Index())
}

// ParseColor accepts a color name ("red") or a palette index ("208")
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColorDefault, nil
	}
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return ColorDefault, fmt.Errorf("unknown color %q", s)
	}
	return Palette(uint8(n)), nil
}

// Fg packs a foreground color and attributes into the SetCell fg argument
func Fg(c Color, attr Attr) Attr {
	return Attr(c) | attr
}

// Split unpacks a SetCell fg argument
func Split(fg Attr) (Color, Attr) {
	return Color(fg &^ attrMask), fg & attrMask
}
