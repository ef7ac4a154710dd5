package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/muurk/impromptu/internal/config"
	"github.com/muurk/impromptu/internal/engine"
	"github.com/muurk/impromptu/internal/field"
	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/terminal/termtest"
)

const lunch = `
title: Lunch order
questions:
  - name: main
    query: Main course?
    widget: choice
    choices: [Pizza, Salad]
    jumps:
      - when: {equals: Pizza}
        action: insert
        targets: [toppings]
  - name: toppings
    query: Toppings?
    widget: multi
    choices: [Olives, Basil]
    detached: true
`

// execute runs the root command with a private config file
func execute(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	outputFormat, forceInit, configPath, logLevel = "", false, "", ""
	t.Setenv("IMPROMPTU_OUTPUT_FORMAT", "")
	t.Setenv("IMPROMPTU_LOG_LEVEL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(in))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestValidateCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	out, err := execute(t, "", "validate", writeFile(t, "lunch.yaml", lunch), "--config", cfg)
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}
	for _, want := range []string{"LUNCH ORDER", "Questions:", "Form is valid", "main, toppings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "WARNING") {
		t.Errorf("every detached question is reachable:\n%s", out)
	}
}

func TestValidateCommandUnreachable(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	src := lunch + `  - name: dessert
    query: Dessert?
    widget: text
    detached: true
`
	out, err := execute(t, "", "validate", writeFile(t, "lunch.yaml", src), "--config", cfg)
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}
	for _, want := range []string{"WARNING", "dessert", "Form is valid"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateCommandInvalid(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	bad := strings.Replace(lunch, "widget: multi", "widget: mutli", 1)
	out, err := execute(t, "", "validate", writeFile(t, "bad.yaml", bad), "--config", cfg)
	if err == nil {
		t.Fatal("validate should fail")
	}
	if !strings.Contains(err.Error(), `did you mean "multi"?`) {
		t.Errorf("error should suggest multi: %v", err)
	}
	if !strings.Contains(out, "FAILED") {
		t.Errorf("output should show the failure box:\n%s", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "impromptu", "config.yaml")

	out, err := execute(t, "", "config", "init", "--config", cfg)
	if err != nil {
		t.Fatalf("config init error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Configuration written") {
		t.Errorf("config init output:\n%s", out)
	}

	// declined overwrite leaves the file alone
	if err := os.WriteFile(cfg, []byte("output:\n  format: json\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "no\n", "config", "init", "--config", cfg); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	out, err = execute(t, "", "config", "show", "--config", cfg)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "format: json") || !strings.HasPrefix(out, "# "+cfg) {
		t.Errorf("config show output:\n%s", out)
	}

	if _, err := execute(t, "", "config", "init", "--force", "--config", cfg); err != nil {
		t.Fatalf("config init --force error = %v", err)
	}
	out, _ = execute(t, "", "config", "show", "--config", cfg)
	if !strings.Contains(out, "format: table") {
		t.Errorf("--force should restore the defaults:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--config", filepath.Join(t.TempDir(), "c.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "impromptu ") || !strings.Contains(out, "commit:") {
		t.Errorf("version output = %q", out)
	}
}

func TestResolveFormat(t *testing.T) {
	settings = config.Default()
	tests := []struct {
		name    string
		flag    string
		config  string
		want    string
		wantErr bool
	}{
		{"config", "", config.FormatJSON, config.FormatJSON, false},
		{"flag wins", config.FormatTable, config.FormatJSON, config.FormatTable, false},
		{"unknown", "xml", config.FormatTable, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFormat = tt.flag
			settings.Output.Format = tt.config
			got, err := resolveFormat()
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
	outputFormat = ""
}

func TestPrintResults(t *testing.T) {
	results := engine.Results{
		{Name: "name", Kind: field.KindSecret, Result: field.Text("Ada")},
		{Name: "favorite", Kind: field.KindChoice, Result: field.Text("Food")},
	}

	var table bytes.Buffer
	if err := printResults(&table, config.FormatTable, "Demo", results); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(table.String(), "Form complete") || strings.Contains(table.String(), "Ada") {
		t.Errorf("table output:\n%s", table.String())
	}

	var js bytes.Buffer
	if err := printResults(&js, config.FormatJSON, "Demo", results); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"name": "Ada"`) {
		t.Errorf("json output:\n%s", js.String())
	}
}

func TestDemoFlow(t *testing.T) {
	s := termtest.New(80, 24)
	e := engine.New(s)
	for _, f := range demoFields() {
		e.Register(f)
	}

	type outcome struct {
		results engine.Results
		err     error
	}
	done := make(chan outcome, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go func() {
		r, err := e.Start(ctx)
		done <- outcome{r, err}
	}()

	// esc confirms too, so it runs the same check
	s.Type("a")
	s.Press(terminal.KeyEsc)
	waitFor(t, func() bool { return strings.HasPrefix(s.Row(22), "Error: a name needs") })
	s.Press(terminal.KeyEsc)
	waitFor(t, func() bool { return s.Row(22) == "" })

	// a short name is rejected and the error holds the keyboard
	s.Type("b")
	s.Press(terminal.KeyEnter)
	waitFor(t, func() bool { return strings.HasPrefix(s.Row(22), "Error: a name needs") })
	s.Type("x")
	s.Press(terminal.KeyEsc)
	waitFor(t, func() bool { return s.Row(22) == "" })

	s.Type("c")
	s.Press(terminal.KeyEnter)
	s.Press(terminal.KeyArrowDown, terminal.KeyEnter)
	s.Type(" ")
	s.Press(terminal.KeyArrowDown)
	s.Type(" ")
	s.Press(terminal.KeyEnter)
	s.Press(terminal.KeyEnter)

	got := <-done
	if got.err != nil {
		t.Fatalf("Start() error = %v", got.err)
	}
	if names := got.results.Names(); !slices.Equal(names, []string{"name", "favorite", "favorite_color", "msg"}) {
		t.Errorf("Names() = %v", names)
	}
	if r, _ := got.results.Get("name"); r.Value != "abc" {
		t.Errorf("name = %q, want abc", r.Value)
	}
	if r, _ := got.results.Get("favorite_color"); !slices.Equal(r.Values, []string{"Blue", "Red"}) {
		t.Errorf("favorite_color = %v, want [Blue Red]", r.Values)
	}
}

func TestFollowUp(t *testing.T) {
	tests := []struct {
		topic string
		name  string
		kind  field.Kind
	}{
		{"Food", "favorite_food", field.KindMulti},
		{"Colors", "favorite_color", field.KindMulti},
		{"Cities", "favorite_cities", field.KindMulti},
		{"Other", "favorite_other", field.KindText},
	}
	for _, tt := range tests {
		f := followUp(tt.topic)
		if f.Name() != tt.name || f.Kind() != tt.kind {
			t.Errorf("followUp(%q) = %s (%s), want %s (%s)", tt.topic, f.Name(), f.Kind(), tt.name, tt.kind)
		}
	}
}
