package field

import (
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"go.uber.org/zap"

	"github.com/muurk/impromptu/internal/logging"
	"github.com/muurk/impromptu/internal/registrar"
	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

// Hook is a mount or unmount hook. Returning false skips the field (mount)
// or asks it again (unmount).
type Hook func(f *Field) (bool, error)

// Handler is an update handler. It runs on its own goroutine while the
// interaction loop keeps going.
type Handler func(u *Update) error

type handler struct {
	trigger string
	binding key.Binding
	fn      Handler
}

// Field is one question: its configuration, hooks, event ring and widget.
// A field is served by the engine one lifecycle at a time.
type Field struct {
	name   string
	query  string
	widget widget
	config theme.Config

	onMount   Hook
	onUnmount Hook
	handlers  []handler

	ring   *Ring
	footer help.Model

	screen *terminal.Screen
	reg    *registrar.Registrar[*Field]

	// wmu guards widget state, which handlers read through Value
	wmu sync.Mutex

	mu     sync.Mutex
	result Result
	line   int
	ended  bool
	gate   *task
	tasks  []*task
	stale  []*task
	wake   chan struct{}
	serves int
	nextID uint64
}

func newField(name, query string, w widget) *Field {
	f := &Field{
		name:   name,
		query:  query,
		widget: w,
		config: baseConfig(query),
		ring:   NewRing(RingCapacity),
		footer: newFooter(),
		wake:   make(chan struct{}, 1),
	}
	w.defaults(f.config)
	return f
}

// NewText creates a single-line text entry field
func NewText(name, query string) *Field {
	return newField(name, query, newTextWidget(false))
}

// NewSecret creates a text entry field that masks its input on screen
func NewSecret(name, query string) *Field {
	return newField(name, query, newTextWidget(true))
}

// NewChoice creates a single-choice list. A size below one selects
// DefaultSize rows.
func NewChoice(name, query string, choices []string, size int) *Field {
	return newField(name, query, newListWidget(choices, size, false))
}

// NewMulti creates a multi-choice list
func NewMulti(name, query string, choices []string, size int) *Field {
	return newField(name, query, newListWidget(choices, size, true))
}

// NewStatic creates a field that shows a message and waits for Enter
func NewStatic(name, query, message string) *Field {
	return newField(name, query, newStaticWidget(message))
}

// Setup applies styling settings. Settings the widget does not understand
// are ignored, as are inputs that do not fit the setting.
func (f *Field) Setup(settings ...theme.Setting) *Field {
	f.config.Apply(settings...)
	return f
}

// OnMount sets the mount hook
func (f *Field) OnMount(h Hook) *Field {
	f.onMount = h
	return f
}

// OnUnmount sets the unmount hook
func (f *Field) OnUnmount(h Hook) *Field {
	f.onUnmount = h
	return f
}

// OnUpdate registers a handler launched when a key event matching trigger
// arrives and no other handler holds the gate. The empty trigger matches
// every key. Handlers are tried in registration order.
func (f *Field) OnUpdate(trigger string, h Handler) *Field {
	f.handlers = append(f.handlers, handler{
		trigger: trigger,
		binding: triggerBinding(trigger),
		fn:      h,
	})
	return f
}

// Default preloads the widget: the text of an entry field, the highlighted
// option of a choice list or the checked options of a multi-choice list
func (f *Field) Default(r Result) *Field {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	f.widget.preset(r)
	return f
}

// Bind attaches the field to the screen and registrar it is served on
func (f *Field) Bind(screen *terminal.Screen, reg *registrar.Registrar[*Field]) {
	f.screen = screen
	f.reg = reg
	if m, ok := f.widget.(measurer); ok {
		f.wmu.Lock()
		m.measure(screen.RuneWidth)
		f.wmu.Unlock()
	}
}

func (f *Field) Name() string  { return f.name }
func (f *Field) Query() string { return f.query }
func (f *Field) Kind() Kind    { return f.widget.kind() }

// Config returns the live settings
func (f *Field) Config() theme.Config { return f.config }

// Screen returns the screen the field is drawn on
func (f *Field) Screen() *terminal.Screen { return f.screen }

// Registrar returns the sequence the field is served from, for hooks that
// insert, branch, merge or skip
func (f *Field) Registrar() *registrar.Registrar[*Field] { return f.reg }

// Result returns the answer. It is only meaningful once the interaction
// loop has ended.
func (f *Field) Result() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// SetResult overrides the answer
func (f *Field) SetResult(r Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = r
}

// Value returns what the widget currently holds, for handlers that inspect
// input before the loop ends
func (f *Field) Value() Result {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	return f.widget.value()
}

// Line returns the anchor row
func (f *Field) Line() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.line
}

// SetLine moves the anchor row
func (f *Field) SetLine(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.line = n
}

// Height returns the rows the field occupies while interacting
func (f *Field) Height() int {
	f.wmu.Lock()
	defer f.wmu.Unlock()
	return 1 + f.widget.rows(f.config)
}

// Serves returns how many times the interaction loop has run
func (f *Field) Serves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.serves
}

// Events returns the field's event ring
func (f *Field) Events() *Ring { return f.ring }

// End sets the end signal
func (f *Field) End() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = true
}

// Ended reports whether the end signal is set
func (f *Field) Ended() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ended
}

// Mount runs the mount hook. false means the field is skipped.
func (f *Field) Mount() (bool, error) {
	logging.LogFieldTransition(f.name, "mount")
	if f.onMount == nil {
		return true, nil
	}
	ok, err := f.onMount(f)
	if err != nil {
		return false, &HookError{Field: f.name, Phase: "mount", Err: err}
	}
	return ok, nil
}

// Unmount runs the unmount hook. false means the field must be asked again.
func (f *Field) Unmount() (bool, error) {
	logging.LogFieldTransition(f.name, "unmount", zap.String("result", f.Result().String()))
	if f.onUnmount == nil {
		return true, nil
	}
	ok, err := f.onUnmount(f)
	if err != nil {
		return false, &HookError{Field: f.name, Phase: "unmount", Err: err}
	}
	return ok, nil
}

// Reset prepares the field to be asked again. What the user typed or
// selected is kept so it can be corrected.
func (f *Field) Reset() {
	logging.LogFieldTransition(f.name, "reset")
	f.mu.Lock()
	f.result = Result{}
	f.ended = false
	f.gate = nil
	f.tasks = nil
	f.stale = nil
	f.mu.Unlock()
	f.ring.Clear()
}

// Summary is the collapsed answer shown after the field closes. Lists are
// counted and secrets masked.
func (f *Field) Summary() string {
	mask := rune(0)
	if f.Kind() == KindSecret {
		mask = f.config.Rune(theme.KeyMask)
	}
	return f.Result().summary(mask)
}

// Close collapses the field into its summary line, clears what is below it
// and returns the anchor row for the next field
func (f *Field) Close() int {
	line := f.Line()
	summary := f.Summary()
	next := line + f.config.Int(theme.KeyLinespace)
	refresh := f.config.Bool(theme.KeyRefresh)

	f.screen.Do(func(s terminal.Surface) {
		w, h := s.Size()
		clearRows(s, line, h, w)
		if refresh {
			s.Clear(terminal.AttrNone, terminal.ColorDefault)
		} else {
			x := f.queryLine().Draw(s, 0, line)
			if summary != "" {
				theme.Uniform(summary, f.summaryStyle()).Draw(s, x+2, line)
			}
		}
		s.HideCursor()
		_ = s.Flush()
	})
	if refresh {
		next = 0
	}

	logging.LogFieldTransition(f.name, "close",
		zap.String("summary", summary),
		zap.Int("next_line", next),
	)
	return next
}

func (f *Field) summaryStyle() theme.Style {
	if st, ok := f.config[theme.KeyInputs].(theme.Style); ok && st != theme.Plain {
		return st
	}
	return cyan
}

// queryLine is the icon, a space and the query text
func (f *Field) queryLine() theme.Styled {
	return theme.Concat(
		f.config.Styled(theme.KeyIcon),
		theme.Uniform(" ", theme.Plain),
		f.config.Styled(theme.KeyQuery),
	)
}

func clearRows(s terminal.Surface, from, to, width int) {
	for y := from; y < to; y++ {
		for x := 0; x < width; x++ {
			s.SetCell(x, y, ' ', terminal.AttrNone, terminal.ColorDefault)
		}
	}
}
