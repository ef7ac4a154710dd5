package terminal

import "sync"

// Attr represents text attributes (bitmask). Attributes are OR'ed into the
// foreground argument of SetCell, the way cell-buffer terminals expect.
type Attr uint32

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 9
	AttrUnderline Attr = 1 << 10
	AttrReverse   Attr = 1 << 11
)

// attrMask selects the attribute bits of a combined fg|attr value
const attrMask = AttrBold | AttrUnderline | AttrReverse

// InputMode selects how escape sequences are interpreted
type InputMode int

const (
	InputEsc InputMode = iota
	InputAlt
)

// OutputMode selects the color space of the surface
type OutputMode int

const (
	OutputNormal OutputMode = iota
	Output256
)

// Surface is the cell-buffer capability set the forms engine draws on.
// Any backend satisfying it is interchangeable.
type Surface interface {
	// Init enters raw mode and the alternate screen
	Init() error
	// Close restores the terminal to its original state
	Close()

	SetInputMode(mode InputMode)
	SetOutputMode(mode OutputMode)

	Size() (width, height int)

	// SetCell writes one rune; fg carries the attribute bits
	SetCell(x, y int, ch rune, fg Attr, bg Color)
	Clear(fg Attr, bg Color)
	Flush() error

	HideCursor()
	SetCursor(x, y int)

	// PollEvent blocks until one event arrives. It returns an EventInterrupt
	// event once the surface has been closed.
	PollEvent() Event

	RuneWidth(r rune) int
}

// Screen serializes every write to a Surface. The interaction loop and
// concurrently running update handlers both draw through Do.
type Screen struct {
	mu      sync.Mutex
	surface Surface
}

// NewScreen wraps a surface
func NewScreen(s Surface) *Screen {
	return &Screen{surface: s}
}

// Do runs fn with exclusive access to the surface
func (s *Screen) Do(fn func(Surface)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.surface)
}

// Size returns the surface size
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Size()
}

// RuneWidth reports the display width of r
func (s *Screen) RuneWidth(r rune) int {
	return s.surface.RuneWidth(r)
}

// Surface returns the wrapped surface. Callers outside Do must not write to it.
func (s *Screen) Surface() Surface {
	return s.surface
}
