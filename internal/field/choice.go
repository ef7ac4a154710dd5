package field

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

// listWidget is a scrolling list. In multi mode every option carries a
// checked flag and the result is the checked labels in list order.
type listWidget struct {
	multi   bool
	options []string
	checked []bool
	window  Window
	keys    listKeyMap
}

func newListWidget(options []string, size int, multi bool) *listWidget {
	opts := append([]string{}, options...)
	return &listWidget{
		multi:   multi,
		options: opts,
		checked: make([]bool, len(opts)),
		window:  NewWindow(len(opts), size),
		keys:    newListKeyMap(multi),
	}
}

func (w *listWidget) kind() Kind {
	if w.multi {
		return KindMulti
	}
	return KindChoice
}

func (w *listWidget) defaults(c theme.Config) {
	c[theme.KeyCursor] = theme.Styled{
		Text:   " ›  ",
		Styles: []theme.Style{theme.Plain, cyan, theme.Plain, theme.Plain},
	}
	c[theme.KeyActive] = cyan
	c[theme.KeyInactive] = theme.Plain
	c[theme.KeySize] = theme.Number(w.window.Size)
	if w.multi {
		c[theme.KeySelected] = theme.Styled{Text: "◉ ", Styles: []theme.Style{cyan, theme.Plain}}
		c[theme.KeyUnselected] = theme.Styled{Text: "○ ", Styles: []theme.Style{theme.Plain, theme.Plain}}
	}
}

// resize picks up a size changed through Setup
func (w *listWidget) resize(c theme.Config) {
	if size := c.Int(theme.KeySize); size > 0 && size != w.window.Size {
		choice := w.window.Choice
		w.window = NewWindow(len(w.options), size)
		w.window.Select(choice)
	}
}

func (w *listWidget) rows(c theme.Config) int {
	w.resize(c)
	return w.window.Visible()
}

func (w *listWidget) handle(ev terminal.Event) bool {
	switch {
	case key.Matches(ev, w.keys.Confirm):
		return true
	case key.Matches(ev, w.keys.Up):
		w.window.Up()
	case key.Matches(ev, w.keys.Down):
		w.window.Down()
	case key.Matches(ev, w.keys.Home):
		w.window.Home()
	case key.Matches(ev, w.keys.End):
		w.window.End()
	case key.Matches(ev, w.keys.Toggle):
		w.set(!w.current())
	case key.Matches(ev, w.keys.On):
		w.set(true)
	case key.Matches(ev, w.keys.Off):
		w.set(false)
	}
	return false
}

func (w *listWidget) current() bool {
	if w.window.Choice >= len(w.checked) {
		return false
	}
	return w.checked[w.window.Choice]
}

func (w *listWidget) set(on bool) {
	if w.window.Choice < len(w.checked) {
		w.checked[w.window.Choice] = on
	}
}

func (w *listWidget) draw(s terminal.Surface, c theme.Config, line, width int) (int, int, bool) {
	w.resize(c)
	cursor := c.Styled(theme.KeyCursor)
	blank := cursor.Blank(c.Style(theme.KeyInactive))
	active, inactive := c.Style(theme.KeyActive), c.Style(theme.KeyInactive)

	start, end := w.window.Bounds()
	for i := start; i < end; i++ {
		y := line + 1 + i - start
		lead, label := blank, theme.Uniform(w.options[i], inactive)
		if i == w.window.Choice {
			lead, label = cursor, theme.Uniform(w.options[i], active)
		}
		x := lead.Draw(s, 0, y)
		if w.multi {
			mark := c.Styled(theme.KeyUnselected)
			if w.checked[i] {
				mark = c.Styled(theme.KeySelected)
			}
			x = mark.Draw(s, x, y)
		}
		label.Draw(s, x, y)
	}
	return 0, 0, false
}

func (w *listWidget) value() Result {
	if w.multi {
		var out []string
		for i, on := range w.checked {
			if on {
				out = append(out, w.options[i])
			}
		}
		return List(out...)
	}
	if len(w.options) == 0 {
		return Text("")
	}
	return Text(w.options[w.window.Choice])
}

// preset highlights the first matching option; in multi mode every listed
// option is checked
func (w *listWidget) preset(r Result) {
	for i, opt := range w.options {
		if w.multi {
			w.checked[i] = r.Contains(opt)
		} else if opt == r.Value {
			w.window.Select(i)
			return
		}
	}
}

func (w *listWidget) bindings() []key.Binding {
	return w.keys.ShortHelp()
}
