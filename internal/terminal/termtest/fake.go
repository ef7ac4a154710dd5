// Package termtest provides an in-memory terminal.Surface for tests.
package termtest

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/muurk/impromptu/internal/terminal"
)

// Cell is one recorded cell
type Cell struct {
	Ch rune
	Fg terminal.Attr
	Bg terminal.Color
}

// Fake is a scripted Surface. Events queued with Send are returned by
// PollEvent in order; once the queue is empty PollEvent blocks until more
// events arrive or the surface is closed.
type Fake struct {
	mu      sync.Mutex
	width   int
	height  int
	cells   [][]Cell
	cursorX int
	cursorY int
	hidden  bool
	flushes int
	inited  bool
	closed  bool
	initErr error

	events chan terminal.Event
	done   chan struct{}
}

// New creates a fake surface of the given size
func New(width, height int) *Fake {
	f := &Fake{
		width:  width,
		height: height,
		events: make(chan terminal.Event, 256),
		done:   make(chan struct{}),
	}
	f.reset()
	return f
}

// FailInit makes Init return err
func (f *Fake) FailInit(err error) *Fake {
	f.initErr = err
	return f
}

func (f *Fake) reset() {
	f.cells = make([][]Cell, f.height)
	for y := range f.cells {
		f.cells[y] = make([]Cell, f.width)
		for x := range f.cells[y] {
			f.cells[y][x] = Cell{Ch: ' '}
		}
	}
}

// Send queues events for PollEvent
func (f *Fake) Send(events ...terminal.Event) {
	for _, ev := range events {
		f.events <- ev
	}
}

// Type queues one rune event per character of s
func (f *Fake) Type(s string) {
	for _, r := range s {
		f.Send(terminal.RuneEvent(r))
	}
}

// Press queues key events
func (f *Fake) Press(keys ...terminal.Key) {
	for _, k := range keys {
		f.Send(terminal.KeyEvent(k))
	}
}

func (f *Fake) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initErr != nil {
		return f.initErr
	}
	f.inited = true
	return nil
}

func (f *Fake) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.done)
	}
}

func (f *Fake) SetInputMode(mode terminal.InputMode)   {}
func (f *Fake) SetOutputMode(mode terminal.OutputMode) {}

func (f *Fake) Size() (int, int) {
	return f.width, f.height
}

func (f *Fake) SetCell(x, y int, ch rune, fg terminal.Attr, bg terminal.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.cells[y][x] = Cell{Ch: ch, Fg: fg, Bg: bg}
}

func (f *Fake) Clear(fg terminal.Attr, bg terminal.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Fake) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

func (f *Fake) HideCursor() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden = true
}

func (f *Fake) SetCursor(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden = false
	f.cursorX, f.cursorY = x, y
}

func (f *Fake) PollEvent() terminal.Event {
	select {
	case ev := <-f.events:
		return ev
	case <-f.done:
		return terminal.Event{Type: terminal.EventInterrupt}
	}
}

func (f *Fake) RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// Row returns the text of row y with trailing spaces trimmed
func (f *Fake) Row(y int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if y < 0 || y >= f.height {
		return ""
	}
	var b strings.Builder
	for _, c := range f.cells[y] {
		b.WriteRune(c.Ch)
	}
	return strings.TrimRight(b.String(), " ")
}

// CellAt returns the recorded cell
func (f *Fake) CellAt(x, y int) Cell {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cells[y][x]
}

// Cursor returns the cursor position and whether it is visible
func (f *Fake) Cursor() (int, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursorX, f.cursorY, !f.hidden
}

// Flushes returns how many times Flush was called
func (f *Fake) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}

// Closed reports whether Close was called
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
