package field

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muurk/impromptu/internal/registrar"
	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/terminal/termtest"
	"github.com/muurk/impromptu/internal/theme"
)

func bind(f *Field) *termtest.Fake {
	s := termtest.New(80, 24)
	f.Bind(terminal.NewScreen(s), registrar.New[*Field]())
	return s
}

func keys(evs ...terminal.Event) chan terminal.Event {
	ch := make(chan terminal.Event, len(evs)+8)
	for _, ev := range evs {
		ch <- ev
	}
	return ch
}

func runes(s string) []terminal.Event {
	var out []terminal.Event
	for _, r := range s {
		out = append(out, terminal.RuneEvent(r))
	}
	return out
}

func interact(t *testing.T, f *Field, events chan terminal.Event) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return f.Interact(ctx, events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTextInteract(t *testing.T) {
	f := NewText("name", "What is your name?")
	s := bind(f)

	evs := append(runes("hi"), terminal.KeyEvent(terminal.KeyEsc))
	if err := interact(t, f, keys(evs...)); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := f.Result(); got.Value != "hi" || got.List {
		t.Errorf("Result() = %v, want hi", got)
	}
	if got := s.Row(0); got != "[?] What is your name?" {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(1); got != " »  hi" {
		t.Errorf("Row(1) = %q, want %q", got, " »  hi")
	}
	if x, y, visible := s.Cursor(); x != 6 || y != 1 || !visible {
		t.Errorf("Cursor() = %d,%d,%v, want 6,1,true", x, y, visible)
	}
	if f.Serves() != 1 {
		t.Errorf("Serves() = %d, want 1", f.Serves())
	}
}

func TestTextEditingKeys(t *testing.T) {
	f := NewText("t", "?")
	bind(f)
	evs := runes("helo")
	evs = append(evs,
		terminal.KeyEvent(terminal.KeyArrowLeft),
		terminal.RuneEvent('l'),
		terminal.KeyEvent(terminal.KeyCtrlA),
		terminal.KeyEvent(terminal.KeyDelete),
		terminal.RuneEvent('H'),
		terminal.KeyEvent(terminal.KeyCtrlE),
		terminal.KeyEvent(terminal.KeySpace),
		terminal.RuneEvent('x'),
		terminal.KeyEvent(terminal.KeyBackspace2),
		terminal.KeyEvent(terminal.KeyEnter),
	)
	if err := interact(t, f, keys(evs...)); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := f.Result().Value; got != "Hello " {
		t.Errorf("Result() = %q, want %q", got, "Hello ")
	}
}

func TestSecretMasksScreenNotResult(t *testing.T) {
	f := NewSecret("pw", "Password")
	s := bind(f)
	evs := append(runes("abc"), terminal.KeyEvent(terminal.KeyEnter))
	if err := interact(t, f, keys(evs...)); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := s.Row(1); got != " »  ***" {
		t.Errorf("Row(1) = %q, want masked input", got)
	}
	if got := f.Result().Value; got != "abc" {
		t.Errorf("Result() = %q, want abc", got)
	}

	next := f.Close()
	if got := s.Row(0); got != "[?] Password  ***" {
		t.Errorf("summary = %q", got)
	}
	if next != 2 {
		t.Errorf("Close() = %d, want 2", next)
	}
	if got := s.Row(1); got != "" {
		t.Errorf("Row(1) after Close = %q, want cleared", got)
	}
}

func TestChoiceInteract(t *testing.T) {
	f := NewChoice("pick", "Pick one", []string{"A", "B", "C"}, 7)
	s := bind(f)
	err := interact(t, f, keys(
		terminal.KeyEvent(terminal.KeyArrowDown),
		terminal.KeyEvent(terminal.KeyArrowDown),
		terminal.KeyEvent(terminal.KeyEsc),
	))
	if err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := f.Result().Value; got != "C" {
		t.Errorf("Result() = %q, want C", got)
	}
	if got := s.Row(3); got != " ›  C" {
		t.Errorf("Row(3) = %q, want cursor on C", got)
	}
	if got := s.Row(1); got != "    A" {
		t.Errorf("Row(1) = %q", got)
	}
	if _, _, visible := s.Cursor(); visible {
		t.Error("cursor should be hidden for lists")
	}
}

func TestMultiInteractAndSummary(t *testing.T) {
	f := NewMulti("foods", "Foods?", []string{"Pizza", "Kale", "Steak"}, 7)
	s := bind(f)
	err := interact(t, f, keys(
		terminal.RuneEvent(' '),
		terminal.KeyEvent(terminal.KeyArrowDown),
		terminal.KeyEvent(terminal.KeyArrowDown),
		terminal.KeyEvent(terminal.KeyArrowRight),
		terminal.KeyEvent(terminal.KeyEnter),
	))
	if err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	got := f.Result()
	if !got.List || len(got.Values) != 2 || got.Values[0] != "Pizza" || got.Values[1] != "Steak" {
		t.Errorf("Result() = %#v, want [Pizza Steak]", got)
	}
	if row := s.Row(1); row != "    ◉ Pizza" {
		t.Errorf("Row(1) = %q", row)
	}
	if row := s.Row(2); row != "    ○ Kale" {
		t.Errorf("Row(2) = %q", row)
	}

	f.Close()
	if row := s.Row(0); row != "[?] Foods?  [2] items" {
		t.Errorf("summary = %q", row)
	}
}

func TestStaticInteract(t *testing.T) {
	f := NewStatic("msg", "Note", "0123456789abc")
	f.Setup(theme.Set(theme.KeyWidth, theme.Integer(10)))
	s := bind(f)
	if f.Height() != 3 {
		t.Errorf("Height() = %d, want 3", f.Height())
	}
	err := interact(t, f, keys(
		terminal.KeyEvent(terminal.KeyEsc),
		terminal.KeyEvent(terminal.KeyEnter),
	))
	if err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := s.Row(0); got != "[!] Note" {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(1); got != " »  0123456789" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := s.Row(2); got != "    abc" {
		t.Errorf("Row(2) = %q", got)
	}
	if !f.Result().IsZero() {
		t.Errorf("Result() = %v, want empty", f.Result())
	}
}

func TestFooterShowsKeyHelp(t *testing.T) {
	f := NewStatic("msg", "Note", "hello")
	s := bind(f)
	if err := interact(t, f, keys(terminal.KeyEvent(terminal.KeyEnter))); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := s.Row(23); got != "enter continue" {
		t.Errorf("footer = %q, want %q", got, "enter continue")
	}
}

func TestInteractErrors(t *testing.T) {
	streamErr := errors.New("read failed")
	tests := []struct {
		name string
		ev   terminal.Event
		want error
	}{
		{"ctrl-c", terminal.KeyEvent(terminal.KeyCtrlC), ErrInterrupted},
		{"interrupt", terminal.Event{Type: terminal.EventInterrupt}, ErrInterrupted},
		{"stream error", terminal.ErrorEvent(streamErr), ErrEventStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewText("t", "?")
			bind(f)
			err := interact(t, f, keys(terminal.RuneEvent('a'), tt.ev))
			if !errors.Is(err, tt.want) {
				t.Errorf("Interact() error = %v, want %v", err, tt.want)
			}
			if !f.Result().IsZero() {
				t.Errorf("Result() = %v, want empty after error", f.Result())
			}
		})
	}
}

func TestUpdateGateHoldsEvents(t *testing.T) {
	f := NewText("t", "?")
	bind(f)

	calls := 0
	gotNext := make(chan terminal.Event, 1)
	f.OnUpdate("enter", func(u *Update) error {
		calls++
		if calls > 1 {
			return nil
		}
		u.Reopen()
		ev, err := u.Next()
		if err != nil {
			return err
		}
		gotNext <- ev
		return nil
	})

	events := keys(terminal.RuneEvent('a'), terminal.KeyEvent(terminal.KeyEnter))
	errc := make(chan error, 1)
	go func() { errc <- interact(t, f, events) }()

	waitFor(t, func() bool { return f.holder() != nil })
	events <- terminal.RuneEvent('b')
	if ev := <-gotNext; ev.Ch != 'b' {
		t.Errorf("Next() = %q, want b", ev.Ch)
	}
	waitFor(t, func() bool { return f.holder() == nil })

	if f.Ended() {
		t.Fatal("Reopen should have cleared the end signal")
	}
	events <- terminal.RuneEvent('c')
	events <- terminal.KeyEvent(terminal.KeyEnter)

	if err := <-errc; err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := f.Result().Value; got != "ac" {
		t.Errorf("Result() = %q, want ac (gated event must not reach the widget)", got)
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestUpdateUnreadEventsReturnToWidget(t *testing.T) {
	f := NewText("t", "?")
	bind(f)

	calls := 0
	f.OnUpdate("enter", func(u *Update) error {
		calls++
		if calls > 1 {
			return nil
		}
		u.Reopen()
		for {
			ev, err := u.Next()
			if err != nil {
				return err
			}
			if ev.Key == terminal.KeyEsc {
				break
			}
		}
		u.Release()
		return nil
	})

	// typed ahead in one burst: the handler reads up to esc and leaves the
	// rest queued
	evs := append(runes("a"), terminal.KeyEvent(terminal.KeyEnter), terminal.KeyEvent(terminal.KeyEsc))
	evs = append(evs, runes("bc")...)
	evs = append(evs, terminal.KeyEvent(terminal.KeyEnter))
	if err := interact(t, f, keys(evs...)); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := f.Result().Value; got != "abc" {
		t.Errorf("Result() = %q, want abc", got)
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestUpdateReleasedHandlerIsCancelled(t *testing.T) {
	f := NewText("t", "?")
	bind(f)

	released := make(chan struct{}, 8)
	stopped := make(chan struct{}, 8)
	f.OnUpdate("", func(u *Update) error {
		defer func() { stopped <- struct{}{} }()
		u.Release()
		if _, err := u.Next(); !errors.Is(err, ErrNotGated) {
			t.Errorf("Next() after Release error = %v, want ErrNotGated", err)
		}
		released <- struct{}{}
		<-u.Context().Done()
		return u.Context().Err()
	})

	events := keys()
	errc := make(chan error, 1)
	go func() { errc <- interact(t, f, events) }()

	for _, ev := range append(runes("ok"), terminal.KeyEvent(terminal.KeyEnter)) {
		events <- ev
		<-released
	}

	if err := <-errc; err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if len(stopped) != 3 {
		t.Errorf("%d handlers stopped, want 3", len(stopped))
	}
	if got := f.Result().Value; got != "ok" {
		t.Errorf("Result() = %q, want ok", got)
	}
}

func TestUpdateHandlerError(t *testing.T) {
	f := NewText("t", "?")
	bind(f)
	boom := errors.New("boom")
	f.OnUpdate("x", func(u *Update) error { return boom })

	err := interact(t, f, keys(terminal.RuneEvent('x'), terminal.KeyEvent(terminal.KeyEnter)))
	if !errors.Is(err, boom) || !IsHookError(err) {
		t.Errorf("Interact() error = %v, want hook error wrapping boom", err)
	}
}

func TestUpdateDrawAndValue(t *testing.T) {
	f := NewText("t", "?")
	s := bind(f)
	seen := make(chan string, 1)
	f.OnUpdate("enter", func(u *Update) error {
		seen <- u.Field().Value().Value
		u.Draw(func(surface terminal.Surface) {
			theme.Uniform("checked", theme.Plain).Draw(surface, 0, 10)
		})
		return nil
	})
	evs := append(runes("yo"), terminal.KeyEvent(terminal.KeyEnter))
	if err := interact(t, f, keys(evs...)); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := <-seen; got != "yo" {
		t.Errorf("Value() inside handler = %q, want yo", got)
	}
	if got := s.Row(10); got != "checked" {
		t.Errorf("Row(10) = %q, want checked", got)
	}
}

func TestMountUnmountHooks(t *testing.T) {
	f := NewText("t", "?")
	if ok, err := f.Mount(); !ok || err != nil {
		t.Errorf("Mount() without hook = %v, %v", ok, err)
	}
	f.OnMount(func(*Field) (bool, error) { return false, nil })
	if ok, _ := f.Mount(); ok {
		t.Error("Mount() should report the hook's false")
	}

	boom := errors.New("boom")
	f.OnUnmount(func(*Field) (bool, error) { return false, boom })
	if _, err := f.Unmount(); !errors.Is(err, boom) || !IsHookError(err) {
		t.Errorf("Unmount() error = %v", err)
	}
}

func TestResetKeepsInput(t *testing.T) {
	f := NewText("t", "?")
	bind(f)
	evs := append(runes("ab"), terminal.KeyEvent(terminal.KeyEnter))
	if err := interact(t, f, keys(evs...)); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	f.Reset()
	if !f.Result().IsZero() || f.Ended() || f.Events().Len() != 0 {
		t.Errorf("Reset() left result %v ended %v events %d", f.Result(), f.Ended(), f.Events().Len())
	}

	evs = append(runes("c"), terminal.KeyEvent(terminal.KeyEnter))
	if err := interact(t, f, keys(evs...)); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if got := f.Result().Value; got != "abc" {
		t.Errorf("Result() = %q, want abc", got)
	}
	if f.Serves() != 2 {
		t.Errorf("Serves() = %d, want 2", f.Serves())
	}
}

func TestCloseRefresh(t *testing.T) {
	f := NewText("t", "Name").Setup(theme.Set(theme.KeyRefresh, theme.Bool(true)))
	s := bind(f)
	f.SetLine(5)
	f.SetResult(Text("x"))
	if next := f.Close(); next != 0 {
		t.Errorf("Close() = %d, want 0", next)
	}
	if got := s.Row(5); got != "" {
		t.Errorf("Row(5) = %q, want cleared screen", got)
	}
}

func TestSetupAndDefault(t *testing.T) {
	f := NewChoice("c", "?", []string{"a", "b", "c", "d"}, 7).
		Setup(theme.Set(theme.KeyIcon, theme.Text("<?>")), theme.Set(theme.KeySize, theme.Integer(2))).
		Default(Text("c"))
	if got := f.Config().Styled(theme.KeyIcon).Text; got != "<?>" {
		t.Errorf("icon = %q", got)
	}
	if f.Height() != 3 {
		t.Errorf("Height() = %d, want 3", f.Height())
	}
	if got := f.Value().Value; got != "c" {
		t.Errorf("Value() = %q, want c", got)
	}
}
