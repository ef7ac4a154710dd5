package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/impromptu/internal/field"
	"github.com/muurk/impromptu/internal/logging"
	"github.com/muurk/impromptu/internal/registrar"
	"github.com/muurk/impromptu/internal/terminal"
)

// DefaultEventBuffer is the capacity of the channel between the poller and
// the interaction loop
const DefaultEventBuffer = 64

// Engine serves registered fields one at a time on a terminal surface
type Engine struct {
	surface terminal.Surface
	screen  *terminal.Screen
	reg     *registrar.Registrar[*field.Field]

	registered []*field.Field
	session    string
	buffer     int
}

// Option configures an Engine
type Option func(*Engine)

// WithEventBuffer sets the poller channel capacity
func WithEventBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.buffer = n
		}
	}
}

// WithSession sets the id logged with every run. A random one is used
// otherwise.
func WithSession(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.session = id
		}
	}
}

// New creates an engine drawing on surface
func New(surface terminal.Surface, opts ...Option) *Engine {
	e := &Engine{
		surface: surface,
		screen:  terminal.NewScreen(surface),
		reg:     registrar.New[*field.Field](),
		session: uuid.NewString(),
		buffer:  DefaultEventBuffer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register appends a field to the primary chain
func (e *Engine) Register(f *field.Field) registrar.Key {
	e.registered = append(e.registered, f)
	return e.reg.Put(f)
}

// Registrar returns the flow the engine walks
func (e *Engine) Registrar() *registrar.Registrar[*field.Field] {
	return e.reg
}

// Session returns the run id
func (e *Engine) Session() string {
	return e.session
}

// Start initializes the terminal and serves fields until the registrar is
// exhausted. The terminal is restored before Start returns, including on
// error. Registered fields that were never reached are reported as skipped.
func (e *Engine) Start(ctx context.Context) (Results, error) {
	log := logging.GetLogger().With(zap.String("session", e.session))

	if err := e.surface.Init(); err != nil {
		return nil, &Error{Type: ErrTypeTerminalInit, Message: "failed to initialize terminal", Err: err}
	}
	e.surface.SetInputMode(terminal.InputEsc)
	e.surface.SetOutputMode(terminal.Output256)
	log.Info("Form started", zap.Int("fields", len(e.registered)))

	ctx, cancel := context.WithCancel(ctx)
	events := make(chan terminal.Event, e.buffer)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.poll(ctx, events)
	}()

	results, err := e.serve(ctx, events)

	cancel()
	e.surface.Close()
	wg.Wait()

	if err != nil {
		log.Error("Form aborted", zap.Error(err))
		return results, err
	}

	results = e.unreached(results)
	log.Info("Form finished", zap.Int("answers", len(results)))
	return results, nil
}

// poll forwards surface events until the surface is closed or ctx is done
func (e *Engine) poll(ctx context.Context, events chan<- terminal.Event) {
	for {
		ev := e.surface.PollEvent()
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
		if ev.Type == terminal.EventInterrupt || ev.Type == terminal.EventError {
			return
		}
	}
}

func (e *Engine) serve(ctx context.Context, events <-chan terminal.Event) (Results, error) {
	var results Results
	line := 0

	for {
		f, ok := e.reg.Get()
		if !ok {
			return results, nil
		}
		f.Bind(e.screen, e.reg)

		mounted, err := f.Mount()
		if err != nil {
			return results, classify(err, f.Name())
		}

		line = e.fit(f, line)
		f.SetLine(line)

		if mounted {
			if err := f.Interact(ctx, events); err != nil {
				return results, classify(err, f.Name())
			}
			accepted, err := f.Unmount()
			if err != nil {
				return results, classify(err, f.Name())
			}
			if !accepted {
				f.Reset()
				e.reg.Restart()
				continue
			}
		}

		line = f.Close()
		results = results.record(Answer{
			Name:    f.Name(),
			Query:   f.Query(),
			Kind:    f.Kind(),
			Result:  f.Result(),
			Skipped: !mounted,
		})
	}
}

// fit wraps to the top of a cleared screen when the field would run into
// the footer row
func (e *Engine) fit(f *field.Field, line int) int {
	_, h := e.screen.Size()
	if line == 0 || line+f.Height() < h-1 {
		return line
	}
	e.screen.Do(func(s terminal.Surface) {
		s.Clear(terminal.AttrNone, terminal.ColorDefault)
	})
	return 0
}

// unreached appends registered fields the walk never served
func (e *Engine) unreached(results Results) Results {
	for _, f := range e.registered {
		if _, ok := results.Get(f.Name()); !ok {
			results = append(results, Answer{Name: f.Name(), Query: f.Query(), Kind: f.Kind(), Skipped: true})
		}
	}
	return results
}
