package terminal

import "fmt"

// EventType classifies events returned by PollEvent
type EventType int

const (
	EventKey EventType = iota
	EventResize
	EventError
	EventInterrupt
)

// Key identifies a non-printable key. Printable input arrives as KeyRune
// with Ch set.
type Key int

const (
	KeyRune Key = iota
	KeyEsc
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyBackspace2
	KeyDelete
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlK
	KeyUnknown
)

// keyNames follow the bubbles/bubbletea naming so key.Binding values can
// match events directly.
var keyNames = map[Key]string{
	KeyEsc:        "esc",
	KeyEnter:      "enter",
	KeyTab:        "tab",
	KeySpace:      " ",
	KeyBackspace:  "ctrl+h",
	KeyBackspace2: "backspace",
	KeyDelete:     "delete",
	KeyArrowUp:    "up",
	KeyArrowDown:  "down",
	KeyArrowLeft:  "left",
	KeyArrowRight: "right",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyCtrlA:      "ctrl+a",
	KeyCtrlB:      "ctrl+b",
	KeyCtrlC:      "ctrl+c",
	KeyCtrlD:      "ctrl+d",
	KeyCtrlE:      "ctrl+e",
	KeyCtrlF:      "ctrl+f",
	KeyCtrlK:      "ctrl+k",
	KeyUnknown:    "unknown",
}

// String returns the key name
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "rune"
}

// Event is one input event
type Event struct {
	Type   EventType
	Key    Key
	Ch     rune
	Width  int
	Height int
	Err    error
}

// KeyEvent builds a key event
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent builds a printable key event
func RuneEvent(r rune) Event {
	if r == ' ' {
		return Event{Type: EventKey, Key: KeySpace, Ch: r}
	}
	return Event{Type: EventKey, Key: KeyRune, Ch: r}
}

// ErrorEvent builds an event stream error
func ErrorEvent(err error) Event {
	return Event{Type: EventError, Err: err}
}

// String implements fmt.Stringer. Key events stringify to their binding
// name ("esc", "ctrl+b", "a"), which is what key.Matches compares.
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		if e.Key == KeyRune {
			return string(e.Ch)
		}
		return e.Key.String()
	case EventResize:
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	case EventError:
		return fmt.Sprintf("error(%v)", e.Err)
	case EventInterrupt:
		return "interrupt"
	default:
		return "event"
	}
}

// Printable reports whether the event carries a rune to insert
func (e Event) Printable() bool {
	return e.Type == EventKey && (e.Key == KeyRune || e.Key == KeySpace) && e.Ch != 0
}
