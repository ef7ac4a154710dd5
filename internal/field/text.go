package field

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

// textWidget is single-line entry. The secret variant masks every rune on
// screen; the buffer itself is never masked.
type textWidget struct {
	secret bool
	editor *Editor
	keys   textKeyMap
}

func newTextWidget(secret bool) *textWidget {
	return &textWidget{
		secret: secret,
		editor: NewEditor(runewidth.RuneWidth),
		keys:   newTextKeyMap(),
	}
}

func (w *textWidget) kind() Kind {
	if w.secret {
		return KindSecret
	}
	return KindText
}

func (w *textWidget) defaults(c theme.Config) {
	c[theme.KeyPrompt] = theme.Styled{
		Text:   " » ",
		Styles: []theme.Style{theme.Plain, red, theme.Plain},
	}
	c[theme.KeyInputs] = theme.Plain
	c[theme.KeyWidth] = theme.Number(DefaultWidth)
	if w.secret {
		c[theme.KeyMask] = theme.Glyph('*')
	}
}

func (w *textWidget) measure(width func(rune) int) {
	w.editor.width = width
}

func (w *textWidget) rows(theme.Config) int { return 1 }

func (w *textWidget) handle(ev terminal.Event) bool {
	e := w.editor
	switch {
	case key.Matches(ev, w.keys.Confirm):
		return true
	case key.Matches(ev, w.keys.Left):
		e.Left()
	case key.Matches(ev, w.keys.Right):
		e.Right()
	case key.Matches(ev, w.keys.Backspace):
		e.DeleteBackward()
	case key.Matches(ev, w.keys.Delete):
		e.DeleteForward()
	case key.Matches(ev, w.keys.DeleteToEnd):
		e.DeleteToEnd()
	case key.Matches(ev, w.keys.Home):
		e.Home()
	case key.Matches(ev, w.keys.End):
		e.End()
	case ev.Key == terminal.KeyTab:
		e.Insert('\t')
	case ev.Key == terminal.KeySpace:
		e.Insert(' ')
	case ev.Printable():
		e.Insert(ev.Ch)
	}
	return false
}

func (w *textWidget) draw(s terminal.Surface, c theme.Config, line, width int) (int, int, bool) {
	y := line + 1
	x := c.Styled(theme.KeyPrompt).Draw(s, 0, y) + 1

	if mask := c.Rune(theme.KeyMask); w.secret && mask != w.editor.mask {
		w.editor.mask = mask
		w.editor.moveTo(w.editor.cursor)
	}
	cols := min(c.Int(theme.KeyWidth), width-x-1)
	if cols < 1 {
		cols = 1
	}
	w.editor.Scroll(cols, DefaultPadding)
	w.editor.Draw(s, x, y, cols, c.Style(theme.KeyInputs))
	return x + w.editor.CursorX(), y, true
}

func (w *textWidget) value() Result {
	return Text(w.editor.String())
}

func (w *textWidget) preset(r Result) {
	w.editor.Set(r.Value)
}

func (w *textWidget) bindings() []key.Binding {
	return w.keys.ShortHelp()
}
