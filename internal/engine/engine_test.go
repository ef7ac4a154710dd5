package engine

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/muurk/impromptu/internal/field"
	"github.com/muurk/impromptu/internal/registrar"
	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/terminal/termtest"
)

func start(t *testing.T, e *Engine) (Results, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Start(ctx)
}

func TestStartTextAndChoice(t *testing.T) {
	s := termtest.New(80, 24)
	e := New(s, WithSession("test"))
	e.Register(field.NewText("name", "Name?"))
	e.Register(field.NewChoice("pick", "Pick one", []string{"A", "B", "C"}, 7))

	s.Type("hi")
	s.Press(terminal.KeyEsc, terminal.KeyArrowDown, terminal.KeyArrowDown, terminal.KeyEsc)

	results, err := start(t, e)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got, _ := results.Get("name"); got.Value != "hi" {
		t.Errorf("name = %q, want hi", got.Value)
	}
	if got, _ := results.Get("pick"); got.Value != "C" {
		t.Errorf("pick = %q, want C", got.Value)
	}
	if got := results.Names(); !slices.Equal(got, []string{"name", "pick"}) {
		t.Errorf("Names() = %v", got)
	}
	if !s.Closed() {
		t.Error("surface should be closed after Start")
	}
	if e.Session() != "test" {
		t.Errorf("Session() = %q, want test", e.Session())
	}

	// closed fields collapse to their summary, linespace 2 apart
	if got := s.Row(0); got != "[?] Name?  hi" {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(2); got != "[?] Pick one  C" {
		t.Errorf("Row(2) = %q", got)
	}
}

func TestStartReask(t *testing.T) {
	s := termtest.New(80, 24)
	e := New(s)

	asked := 0
	f := field.NewText("code", "Code?").OnUnmount(func(f *field.Field) (bool, error) {
		asked++
		return asked > 1, nil
	})
	e.Register(f)

	s.Type("a")
	s.Press(terminal.KeyEnter)
	s.Type("b")
	s.Press(terminal.KeyEnter)

	results, err := start(t, e)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if f.Serves() != 2 {
		t.Errorf("Serves() = %d, want 2", f.Serves())
	}
	if got, _ := results.Get("code"); got.Value != "ab" {
		t.Errorf("code = %q, want ab", got.Value)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1", len(results))
	}
}

func TestStartMountSkips(t *testing.T) {
	s := termtest.New(80, 24)
	e := New(s)
	e.Register(field.NewText("hidden", "Hidden?").OnMount(func(*field.Field) (bool, error) {
		return false, nil
	}))
	e.Register(field.NewText("shown", "Shown?"))

	s.Type("x")
	s.Press(terminal.KeyEnter)

	results, err := start(t, e)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !results[0].Skipped || results[0].Name != "hidden" {
		t.Errorf("results[0] = %+v, want skipped hidden", results[0])
	}
	if got, _ := results.Get("shown"); got.Value != "x" {
		t.Errorf("shown = %q, want x", got.Value)
	}
}

func TestStartInsert(t *testing.T) {
	s := termtest.New(80, 24)
	e := New(s)

	extra := field.NewText("extra", "Extra?")
	e.Register(field.NewChoice("topic", "Topic?", []string{"more", "less"}, 3).
		OnUnmount(func(f *field.Field) (bool, error) {
			if f.Result().Value == "more" {
				return true, f.Registrar().Insert(extra)
			}
			return true, nil
		}))
	e.Register(field.NewText("last", "Last?"))

	s.Press(terminal.KeyEnter)
	s.Type("e")
	s.Press(terminal.KeyEnter)
	s.Type("l")
	s.Press(terminal.KeyEnter)

	results, err := start(t, e)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := results.Names(); !slices.Equal(got, []string{"topic", "extra", "last"}) {
		t.Errorf("Names() = %v", got)
	}
	m := results.Map()
	if m["extra"] != "e" || m["last"] != "l" {
		t.Errorf("Map() = %v", m)
	}
}

func TestStartBranchMergeAndSkip(t *testing.T) {
	s := termtest.New(80, 24)
	e := New(s)

	detour := field.NewText("detour", "Detour?").OnUnmount(func(f *field.Field) (bool, error) {
		return true, f.Registrar().Merge(registrar.None)
	})
	e.Register(field.NewText("a", "A?").OnUnmount(func(f *field.Field) (bool, error) {
		return true, f.Registrar().Branch(detour)
	}))
	e.Register(field.NewText("b", "B?").OnUnmount(func(f *field.Field) (bool, error) {
		return true, f.Registrar().Skip(registrar.None)
	}))
	e.Register(field.NewText("c", "C?"))
	e.Register(field.NewText("d", "D?"))

	for _, in := range []string{"1", "2", "3", "4"} {
		s.Type(in)
		s.Press(terminal.KeyEnter)
	}

	results, err := start(t, e)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	want := []string{"a", "detour", "b", "d", "c"}
	if got := results.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if !results[4].Skipped {
		t.Error("c should be reported as skipped")
	}
	if got, _ := results.Get("d"); got.Value != "4" {
		t.Errorf("d = %q, want 4", got.Value)
	}
	if len(e.Registrar().Orphaned()) != 1 {
		t.Errorf("Orphaned() = %v, want c only", e.Registrar().Orphaned())
	}
}

func TestStartWrapsToTop(t *testing.T) {
	s := termtest.New(80, 6)
	e := New(s)
	fields := []*field.Field{
		field.NewText("one", "One?"),
		field.NewText("two", "Two?"),
		field.NewText("three", "Three?"),
	}
	for _, f := range fields {
		e.Register(f)
		s.Press(terminal.KeyEnter)
	}

	if _, err := start(t, e); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i, want := range []int{0, 2, 0} {
		if got := fields[i].Line(); got != want {
			t.Errorf("%s Line() = %d, want %d", fields[i].Name(), got, want)
		}
	}
}

func TestStartErrors(t *testing.T) {
	t.Run("terminal init", func(t *testing.T) {
		s := termtest.New(80, 24).FailInit(errors.New("not a tty"))
		e := New(s)
		e.Register(field.NewText("t", "?"))
		_, err := start(t, e)
		if !IsTerminalError(err) {
			t.Errorf("Start() error = %v, want terminal error", err)
		}
		var ee *Error
		if !errors.As(err, &ee) || ee.Type != ErrTypeTerminalInit {
			t.Errorf("Start() error type = %v", err)
		}
	})

	t.Run("ctrl+c", func(t *testing.T) {
		s := termtest.New(80, 24)
		e := New(s)
		e.Register(field.NewText("t", "?"))
		s.Type("ab")
		s.Press(terminal.KeyCtrlC)
		_, err := start(t, e)
		if !IsInterrupted(err) {
			t.Errorf("Start() error = %v, want interrupted", err)
		}
		if !s.Closed() {
			t.Error("surface should be restored on error")
		}
	})

	t.Run("event stream", func(t *testing.T) {
		s := termtest.New(80, 24)
		e := New(s)
		e.Register(field.NewText("t", "?"))
		s.Send(terminal.ErrorEvent(errors.New("read failed")))
		_, err := start(t, e)
		var ee *Error
		if !errors.As(err, &ee) || ee.Type != ErrTypeEventStream || ee.Field != "t" {
			t.Errorf("Start() error = %v, want event stream error on t", err)
		}
	})

	t.Run("merge outside branch", func(t *testing.T) {
		s := termtest.New(80, 24)
		e := New(s)
		e.Register(field.NewText("t", "?").OnUnmount(func(f *field.Field) (bool, error) {
			return true, f.Registrar().Merge(registrar.None)
		}))
		s.Press(terminal.KeyEnter)
		results, err := start(t, e)
		if !IsHookError(err) {
			t.Errorf("Start() error = %v, want hook error", err)
		}
		if !registrar.IsNoActiveBranch(err) {
			t.Errorf("Start() error = %v, want no active branch in chain", err)
		}
		if len(results) != 0 {
			t.Errorf("results = %v, want none", results)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		s := termtest.New(80, 24)
		e := New(s)
		e.Register(field.NewText("t", "?"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.Start(ctx)
		if !IsInterrupted(err) {
			t.Errorf("Start() error = %v, want interrupted", err)
		}
	})
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeTerminalInit, "Terminal Init Error"},
		{ErrTypeEventStream, "Event Stream Error"},
		{ErrTypeInterrupted, "Interrupted"},
		{ErrTypeHook, "Hook Error"},
		{ErrorType(42), "ErrorType(42)"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResultsRecordReplaces(t *testing.T) {
	var r Results
	r = r.record(Answer{Name: "a", Result: field.Text("1")})
	r = r.record(Answer{Name: "b", Result: field.List("x", "y")})
	r = r.record(Answer{Name: "a", Result: field.Text("2")})

	if got := r.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	if got, _ := r.Get("a"); got.Value != "2" {
		t.Errorf("a = %q, want 2", got.Value)
	}
	if got, ok := r.Map()["b"].([]string); !ok || !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Map()[b] = %v", r.Map()["b"])
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}
