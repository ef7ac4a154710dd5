package theme

import (
	"unicode/utf8"

	"github.com/muurk/impromptu/internal/terminal"
)

// Style is a (foreground, attribute, background) triplet
type Style struct {
	Fg   terminal.Color
	Attr terminal.Attr
	Bg   terminal.Color
}

// Triplet builds a style from all three components
func Triplet(fg terminal.Color, attr terminal.Attr, bg terminal.Color) Style {
	return Style{Fg: fg, Attr: attr, Bg: bg}
}

// Pair builds a style without attributes
func Pair(fg, bg terminal.Color) Style {
	return Style{Fg: fg, Bg: bg}
}

// Plain is the terminal default style
var Plain = Style{}

// Cell returns the SetCell foreground and background arguments
func (s Style) Cell() (terminal.Attr, terminal.Color) {
	return terminal.Fg(s.Fg, s.Attr), s.Bg
}

// Styled is text paired with one style per rune. It is the canonical form
// every text-like setting is normalized to.
type Styled struct {
	Text   string
	Styles []Style
}

// Uniform styles every rune of text the same way
func Uniform(text string, s Style) Styled {
	return Styled{Text: text, Styles: repeat(s, utf8.RuneCountInString(text))}
}

// Len returns the number of runes
func (s Styled) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// Valid reports whether every rune has a style
func (s Styled) Valid() bool {
	return s.Len() == len(s.Styles)
}

// Concat joins styled fragments
func Concat(parts ...Styled) Styled {
	var out Styled
	for _, p := range parts {
		out.Text += p.Text
		out.Styles = append(out.Styles, p.Styles...)
	}
	return out
}

// Blank returns spaces as wide as s, styled with fill
func (s Styled) Blank(fill Style) Styled {
	n := s.Len()
	b := make([]rune, n)
	for i := range b {
		b[i] = ' '
	}
	return Styled{Text: string(b), Styles: repeat(fill, n)}
}

// Draw writes the styled text at (x, y) and returns the next column.
// Wide runes advance by their display width.
func (s Styled) Draw(surface terminal.Surface, x, y int) int {
	i := 0
	for _, r := range s.Text {
		st := Plain
		if i < len(s.Styles) {
			st = s.Styles[i]
		}
		fg, bg := st.Cell()
		surface.SetCell(x, y, r, fg, bg)
		x += surface.RuneWidth(r)
		i++
	}
	return x
}

func repeat(s Style, n int) []Style {
	out := make([]Style, n)
	for i := range out {
		out[i] = s
	}
	return out
}
