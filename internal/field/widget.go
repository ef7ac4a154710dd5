package field

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

// Kind names a widget variant
type Kind string

const (
	KindStatic Kind = "static"
	KindText   Kind = "text"
	KindSecret Kind = "secret"
	KindChoice Kind = "choice"
	KindMulti  Kind = "multi"
)

// Kinds lists every widget variant
var Kinds = []Kind{KindText, KindSecret, KindChoice, KindMulti, KindStatic}

// widget is the variant-specific part of a field: its key handling, the
// rows it draws below the query line, and the value it produces.
type widget interface {
	kind() Kind
	defaults(c theme.Config)
	// rows is the number of screen rows used below the query line
	rows(c theme.Config) int
	// handle applies one key event and reports whether it ends the loop
	handle(ev terminal.Event) bool
	// draw renders the widget below line and returns the cursor position,
	// or ok false to hide it
	draw(s terminal.Surface, c theme.Config, line, width int) (x, y int, ok bool)
	value() Result
	preset(r Result)
	bindings() []key.Binding
}

// measurer is implemented by widgets whose layout depends on rune widths
type measurer interface {
	measure(width func(rune) int)
}

var (
	green  = theme.Pair(terminal.ColorGreen, terminal.ColorDefault)
	red    = theme.Pair(terminal.ColorRed, terminal.ColorDefault)
	yellow = theme.Pair(terminal.ColorYellow, terminal.ColorDefault)
	cyan   = theme.Pair(terminal.ColorCyan, terminal.ColorDefault)
	dim    = theme.Pair(terminal.Palette(244), terminal.ColorDefault)
)

// baseConfig holds the settings every field understands
func baseConfig(query string) theme.Config {
	return theme.Config{
		theme.KeyIcon: theme.Styled{
			Text:   "[?]",
			Styles: []theme.Style{theme.Plain, green, theme.Plain},
		},
		theme.KeyQuery:     theme.Uniform(query, theme.Plain),
		theme.KeyLinespace: theme.Number(2),
		theme.KeyRefresh:   theme.Toggle(false),
	}
}
