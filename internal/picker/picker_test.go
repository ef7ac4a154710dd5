package picker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

const good = `
title: Lunch order
questions:
  - name: main
    query: Main course?
    widget: choice
    choices: [Pizza, Salad]
  - name: note
    query: Anything else?
    widget: text
    detached: true
`

const bad = `
questions:
  - name: main
    query: Main course?
    widget: chioce
`

func writeForms(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a_lunch.yaml": good,
		"b_broken.yml": bad,
		"notes.txt":    "not a form",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0700); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestScan(t *testing.T) {
	entries, err := Scan(writeForms(t))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Scan() found %d entries, want 2", len(entries))
	}

	lunch := entries[0]
	if lunch.Title != "Lunch order" || lunch.Questions != 2 || lunch.Detached != 1 || !lunch.Valid() {
		t.Errorf("entries[0] = %+v", lunch)
	}

	broken := entries[1]
	if broken.Valid() {
		t.Fatal("entries[1] should be invalid")
	}
	if broken.Title != "b_broken" {
		t.Errorf("Title = %q, want the file name", broken.Title)
	}
	if !strings.Contains(broken.Problem(), `did you mean "choice"?`) {
		t.Errorf("Problem() = %q", broken.Problem())
	}

	if _, err := Scan(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Scan() of a missing directory should fail")
	}
}

func TestLoadUnreadable(t *testing.T) {
	e := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if e.Valid() || e.Problem() == "" {
		t.Errorf("Load() = %+v, want an error", e)
	}
	if !strings.Contains(e.String(), "invalid") {
		t.Errorf("String() = %q", e.String())
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := New(writeForms(t))
	m, _ = update(t, m, scanStartMsg{})
	if !m.Scanning {
		t.Fatal("scanStartMsg should start scanning")
	}
	msg := m.scan()()
	m, _ = update(t, m, msg)
	if m.Scanning || len(m.List.Items()) != 2 {
		t.Fatalf("after scan: scanning %v, %d items", m.Scanning, len(m.List.Items()))
	}
	return m
}

func TestModelSelect(t *testing.T) {
	m := loaded(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Selected || cmd == nil {
		t.Fatal("enter on a valid form should select it and quit")
	}
	if e := m.Selection(); e == nil || e.Title != "Lunch order" {
		t.Errorf("Selection() = %v", e)
	}
}

func TestModelRejectsInvalid(t *testing.T) {
	m := loaded(t)
	m.List.Select(1)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected || m.Selection() != nil {
		t.Error("an invalid form must not be selected")
	}
}

func TestModelQuit(t *testing.T) {
	m := loaded(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if m.Selection() != nil {
		t.Error("quitting selects nothing")
	}
}

func TestModelOpenPath(t *testing.T) {
	m := loaded(t)
	extra := filepath.Join(t.TempDir(), "extra.yaml")
	if err := os.WriteFile(extra, []byte(good), 0600); err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if !m.PathMode {
		t.Fatal("o should open the path input")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(extra)})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.PathMode {
		t.Error("enter should close the path input")
	}
	if len(m.List.Items()) != 3 {
		t.Fatalf("%d items, want 3", len(m.List.Items()))
	}
	if e := m.current(); e == nil || e.Path != extra {
		t.Errorf("current() = %v, want the opened file", e)
	}

	// esc leaves the list untouched
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.PathMode || len(m.List.Items()) != 3 {
		t.Error("esc should cancel the path input")
	}
}

func TestModelView(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	out := m.View()
	for _, want := range []string{AppName, "Lunch order", "Ready", "rescan"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	empty := New(t.TempDir())
	empty, _ = update(t, empty, scanCompleteMsg{})
	if !strings.Contains(empty.View(), "No form files") {
		t.Error("empty directory should say so")
	}
}
