package field

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/impromptu/internal/logging"
	"github.com/muurk/impromptu/internal/terminal"
)

// task is one running update handler. While it holds the gate the
// interaction loop forwards events to it instead of the widget.
type task struct {
	id      uint64
	trigger string
	events  chan terminal.Event
	done    chan struct{}
	cancel  context.CancelFunc
	err     error
}

func (t *task) deliver(ev terminal.Event) {
	select {
	case t.events <- ev:
	default:
		logging.Debug("Update handler queue full, dropping event",
			zap.Uint64("task", t.id),
			zap.String("event", ev.String()),
		)
	}
}

// drain empties the queue of events the handler never read
func (t *task) drain() []terminal.Event {
	var out []terminal.Event
	for {
		select {
		case ev := <-t.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Update is the handle an update handler receives
type Update struct {
	ctx     context.Context
	field   *Field
	task    *task
	trigger terminal.Event
}

// Context is cancelled when the interaction loop exits
func (u *Update) Context() context.Context { return u.ctx }

// Field returns the field the handler was registered on
func (u *Update) Field() *Field { return u.field }

// Trigger returns the event that launched the handler
func (u *Update) Trigger() terminal.Event { return u.trigger }

// Draw runs fn with exclusive access to the surface and flushes
func (u *Update) Draw(fn func(s terminal.Surface)) {
	u.field.screen.Do(func(s terminal.Surface) {
		fn(s)
		_ = s.Flush()
	})
}

// Gated reports whether the handler still holds the gate
func (u *Update) Gated() bool {
	u.field.mu.Lock()
	defer u.field.mu.Unlock()
	return u.field.gate == u.task
}

// Next blocks until the loop forwards the next event. It fails once the
// handler has released the gate or the loop has exited.
func (u *Update) Next() (terminal.Event, error) {
	select {
	case ev := <-u.task.events:
		return ev, nil
	default:
	}
	if !u.Gated() {
		return terminal.Event{}, ErrNotGated
	}
	select {
	case ev := <-u.task.events:
		return ev, nil
	case <-u.ctx.Done():
		return terminal.Event{}, u.ctx.Err()
	}
}

// Release hands events back to the widget, starting with any the handler
// was sent but did not read. The handler may keep running.
func (u *Update) Release() {
	f := u.field
	f.mu.Lock()
	released := f.gate == u.task
	if released {
		f.gate = nil
		f.stale = append(f.stale, u.task)
	}
	f.mu.Unlock()
	if released {
		f.notify()
	}
}

// Reopen clears the end signal so the loop keeps asking, for handlers that
// reject the answer the user just confirmed
func (u *Update) Reopen() {
	f := u.field
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = false
}

func (f *Field) notify() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// launch starts the first handler whose trigger matches ev, if the gate is
// open
func (f *Field) launch(ctx context.Context, ev terminal.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gate != nil {
		return
	}
	for _, h := range f.handlers {
		if !matchesTrigger(ev, h.trigger, h.binding) {
			continue
		}
		f.nextID++
		tctx, cancel := context.WithCancel(ctx)
		t := &task{
			id:      f.nextID,
			trigger: h.trigger,
			events:  make(chan terminal.Event, RingCapacity),
			done:    make(chan struct{}),
			cancel:  cancel,
		}
		f.gate = t
		f.tasks = append(f.tasks, t)

		u := &Update{ctx: tctx, field: f, task: t, trigger: ev}
		fn := h.fn
		go func() {
			defer close(t.done)
			t.err = fn(u)
		}()

		logging.Debug("Update handler launched",
			zap.String("field", f.name),
			zap.String("trigger", h.trigger),
			zap.Uint64("task", t.id),
		)
		return
	}
}

// stopTasks cancels every handler still running, waits for them and
// returns the first error one of them reported
func (f *Field) stopTasks() error {
	f.mu.Lock()
	tasks := f.tasks
	f.tasks = nil
	f.gate = nil
	f.stale = nil
	f.mu.Unlock()

	for _, t := range tasks {
		t.cancel()
	}
	var first error
	for _, t := range tasks {
		<-t.done
		if first == nil && t.err != nil && !errors.Is(t.err, context.Canceled) {
			first = &HookError{Field: f.name, Phase: "update " + t.trigger, Err: t.err}
		}
	}
	return first
}
