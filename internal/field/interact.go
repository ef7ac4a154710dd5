package field

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/impromptu/internal/logging"
	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/theme"
)

// Render draws the query line, the widget and the key help footer
func (f *Field) Render() {
	line := f.Line()
	gated := f.holder() != nil

	f.screen.Do(func(s terminal.Surface) {
		w, h := s.Size()

		f.wmu.Lock()
		rows := f.widget.rows(f.config)
		clearRows(s, line, min(line+1+rows, h), w)
		f.queryLine().Draw(s, 0, line)
		cx, cy, show := f.widget.draw(s, f.config, line, w)
		bindings := f.widget.bindings()
		f.wmu.Unlock()

		// a gated handler owns the rest of the screen
		if !gated && line+1+rows < h-1 {
			f.footer.Width = w
			clearRows(s, h-1, h, w)
			theme.Uniform(f.footer.ShortHelpView(bindings), dim).Draw(s, 0, h-1)
		}

		if show {
			s.SetCursor(cx, cy)
		} else {
			s.HideCursor()
		}
		_ = s.Flush()
	})
}

func (f *Field) holder() *task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gate
}

// reap opens the gate if its holder has already returned, so an event that
// races the completion reaches the widget
func (f *Field) reap() (*task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.gate
	if t == nil {
		return nil, nil
	}
	select {
	case <-t.done:
		f.gate = nil
		f.stale = append(f.stale, t)
		if t.err != nil {
			return nil, &HookError{Field: f.name, Phase: "update " + t.trigger, Err: t.err}
		}
		return nil, nil
	default:
		return t, nil
	}
}

// finished reports whether the loop may exit: the end signal is set and no
// handler holds the gate
func (f *Field) finished() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ended && f.gate == nil
}

// Interact runs the interaction loop until the end signal is set. Each
// event is buffered, then either forwarded to the handler holding the gate
// or applied to the widget, after which matching update handlers are
// launched and the field is redrawn. On return the result is set and every
// handler has stopped.
func (f *Field) Interact(ctx context.Context, events <-chan terminal.Event) error {
	f.mu.Lock()
	f.serves++
	serve := f.serves
	f.mu.Unlock()
	logging.LogFieldTransition(f.name, "interact", zap.Int("serve", serve))

	f.Render()
	err := f.loop(ctx, events)
	if stopErr := f.stopTasks(); err == nil {
		err = stopErr
	}
	if err != nil {
		return err
	}

	f.SetResult(f.Value())
	return nil
}

func (f *Field) loop(ctx context.Context, events <-chan terminal.Event) error {
	for {
		if err := f.reclaim(ctx); err != nil {
			return err
		}
		if f.finished() {
			return nil
		}

		var done <-chan struct{}
		holder := f.holder()
		if holder != nil {
			done = holder.done
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-done:
			f.mu.Lock()
			if f.gate == holder {
				f.gate = nil
				f.stale = append(f.stale, holder)
			}
			f.mu.Unlock()
			if holder.err != nil {
				return &HookError{Field: f.name, Phase: "update " + holder.trigger, Err: holder.err}
			}
			f.Render()

		case <-f.wake:
			f.Render()

		case ev, ok := <-events:
			if !ok {
				return ErrInterrupted
			}
			if err := f.tick(ctx, ev); err != nil {
				return err
			}
		}
	}
}

func (f *Field) tick(ctx context.Context, ev terminal.Event) error {
	switch ev.Type {
	case terminal.EventError:
		return fmt.Errorf("%w: %v", ErrEventStream, ev.Err)
	case terminal.EventInterrupt:
		return ErrInterrupted
	case terminal.EventResize:
		f.Render()
		return nil
	}
	if ev.Key == terminal.KeyCtrlC {
		return ErrInterrupted
	}

	f.ring.Push(ev)
	return f.dispatch(ctx, ev)
}

// dispatch forwards ev to the handler holding the gate, or applies it to
// the widget and launches the handlers it triggers. Events left unread by
// handlers that gave up the gate are applied first.
func (f *Field) dispatch(ctx context.Context, ev terminal.Event) error {
	for {
		holder, err := f.reap()
		if err != nil {
			return err
		}
		if holder != nil {
			logging.LogEvent(f.name, ev.String(), true)
			holder.deliver(ev)
			return nil
		}
		if !f.hasStale() {
			break
		}
		if err := f.reclaim(ctx); err != nil {
			return err
		}
	}
	if f.finished() {
		logging.Debug("Event after the field ended, dropped",
			zap.String("field", f.name),
			zap.String("event", ev.String()),
		)
		return nil
	}
	logging.LogEvent(f.name, ev.String(), false)

	f.wmu.Lock()
	end := f.widget.handle(ev)
	f.wmu.Unlock()
	if end {
		f.End()
	}
	f.launch(ctx, ev)
	f.Render()
	return nil
}

func (f *Field) hasStale() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stale) > 0
}

// reclaim replays, oldest first, the events queued for handlers that no
// longer hold the gate
func (f *Field) reclaim(ctx context.Context) error {
	for {
		f.mu.Lock()
		stale := f.stale
		f.stale = nil
		f.mu.Unlock()
		if len(stale) == 0 {
			return nil
		}
		for _, t := range stale {
			for _, ev := range t.drain() {
				if err := f.dispatch(ctx, ev); err != nil {
					return err
				}
			}
		}
	}
}
