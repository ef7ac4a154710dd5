package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tcell binds Surface to a tcell screen
type Tcell struct {
	screen tcell.Screen
	colors OutputMode
}

// NewTcell creates a surface on the controlling terminal
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return &Tcell{screen: screen, colors: Output256}, nil
}

// NewTcellFrom wraps an existing tcell screen (a SimulationScreen in tests)
func NewTcellFrom(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen, colors: Output256}
}

// Init enters raw mode
func (t *Tcell) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	return nil
}

// Close restores the terminal
func (t *Tcell) Close() {
	t.screen.Fini()
}

// SetInputMode is accepted for contract compatibility. tcell always
// decodes escape sequences into key events.
func (t *Tcell) SetInputMode(mode InputMode) {}

// SetOutputMode limits colors to the eight named colors in OutputNormal
func (t *Tcell) SetOutputMode(mode OutputMode) {
	t.colors = mode
}

func (t *Tcell) Size() (int, int) {
	return t.screen.Size()
}

func (t *Tcell) SetCell(x, y int, ch rune, fg Attr, bg Color) {
	t.screen.SetContent(x, y, ch, nil, t.style(fg, bg))
}

func (t *Tcell) Clear(fg Attr, bg Color) {
	t.screen.Fill(' ', t.style(fg, bg))
}

func (t *Tcell) Flush() error {
	t.screen.Show()
	return nil
}

func (t *Tcell) HideCursor() {
	t.screen.HideCursor()
}

func (t *Tcell) SetCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

func (t *Tcell) RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// PollEvent translates the next tcell event
func (t *Tcell) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// screen finalized
			return Event{Type: EventInterrupt}
		case *tcell.EventKey:
			return translateKey(ev)
		case *tcell.EventResize:
			w, h := ev.Size()
			t.screen.Sync()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventError:
			return ErrorEvent(ev)
		case *tcell.EventInterrupt:
			return Event{Type: EventInterrupt}
		}
		// mouse, paste and focus events are not used by the forms engine
	}
}

func (t *Tcell) style(fg Attr, bg Color) tcell.Style {
	color, attr := Split(fg)
	style := tcell.StyleDefault.
		Foreground(t.color(color)).
		Background(t.color(bg))
	if attr&AttrBold != 0 {
		style = style.Bold(true)
	}
	if attr&AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attr&AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func (t *Tcell) color(c Color) tcell.Color {
	if c == ColorDefault {
		return tcell.ColorDefault
	}
	index := c.Index()
	if t.colors == OutputNormal && c > ColorWhite {
		return tcell.ColorDefault
	}
	if c <= ColorWhite {
		// named colors map onto the first eight palette entries
		index = int(c - ColorBlack)
	}
	return tcell.PaletteColor(index)
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEsc,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace2,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyArrowUp,
	tcell.KeyDown:       KeyArrowDown,
	tcell.KeyLeft:       KeyArrowLeft,
	tcell.KeyRight:      KeyArrowRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyCtrlA:      KeyCtrlA,
	tcell.KeyCtrlB:      KeyCtrlB,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyCtrlD:      KeyCtrlD,
	tcell.KeyCtrlE:      KeyCtrlE,
	tcell.KeyCtrlF:      KeyCtrlF,
	tcell.KeyCtrlK:      KeyCtrlK,
}

var ctrlRunes = map[rune]Key{
	'a': KeyCtrlA,
	'b': KeyCtrlB,
	'c': KeyCtrlC,
	'd': KeyCtrlD,
	'e': KeyCtrlE,
	'f': KeyCtrlF,
	'k': KeyCtrlK,
}

func translateKey(ev *tcell.EventKey) Event {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		// newer tcell releases report ctrl+letter as a modified rune
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if k, ok := ctrlRunes[r]; ok {
				return KeyEvent(k)
			}
		}
		return RuneEvent(r)
	}
	if k, ok := tcellKeys[ev.Key()]; ok {
		return KeyEvent(k)
	}
	return KeyEvent(KeyUnknown)
}
