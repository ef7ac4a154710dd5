package field

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

// DefaultMessageWidth is the column count a static message wraps at
const DefaultMessageWidth = 120

// staticWidget shows a message and waits for Enter
type staticWidget struct {
	message []rune
	keys    staticKeyMap
}

func newStaticWidget(message string) *staticWidget {
	return &staticWidget{message: []rune(message), keys: newStaticKeyMap()}
}

func (w *staticWidget) kind() Kind { return KindStatic }

func (w *staticWidget) defaults(c theme.Config) {
	c[theme.KeyIcon] = theme.Styled{
		Text:   "[!]",
		Styles: []theme.Style{theme.Plain, yellow, theme.Plain},
	}
	c[theme.KeyQuery] = theme.Uniform(c.Styled(theme.KeyQuery).Text, yellow)
	c[theme.KeyPrompt] = theme.Styled{
		Text:   " » ",
		Styles: []theme.Style{theme.Plain, yellow, theme.Plain},
	}
	c[theme.KeyMessage] = yellow
	c[theme.KeyWidth] = theme.Number(DefaultMessageWidth)
}

// segments splits the message into rows of at most width runes
func (w *staticWidget) segments(width int) [][]rune {
	if width < 1 {
		width = DefaultMessageWidth
	}
	var out [][]rune
	for i := 0; i < len(w.message); i += width {
		out = append(out, w.message[i:min(i+width, len(w.message))])
	}
	return out
}

func (w *staticWidget) rows(c theme.Config) int {
	return max(1, len(w.segments(c.Int(theme.KeyWidth))))
}

func (w *staticWidget) handle(ev terminal.Event) bool {
	return key.Matches(ev, w.keys.Continue)
}

func (w *staticWidget) draw(s terminal.Surface, c theme.Config, line, width int) (int, int, bool) {
	y := line + 1
	x := c.Styled(theme.KeyPrompt).Draw(s, 0, y) + 1
	style := c.Style(theme.KeyMessage)
	for dy, seg := range w.segments(c.Int(theme.KeyWidth)) {
		theme.Uniform(string(seg), style).Draw(s, x, y+dy)
	}
	return 0, 0, false
}

func (w *staticWidget) value() Result { return Result{} }

func (w *staticWidget) preset(Result) {}

func (w *staticWidget) bindings() []key.Binding {
	return w.keys.ShortHelp()
}
