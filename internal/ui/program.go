package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/impromptu/internal/engine"
)

// RunOnceModel is a Bubble Tea model that renders once and exits.
// This is used for "run once and exit" output patterns rather than
// interactive TUIs.
type RunOnceModel struct {
	content string
}

// NewRunOnceModel creates a model that will render the given content and exit
func NewRunOnceModel(content string) RunOnceModel {
	return RunOnceModel{content: content}
}

// Init implements tea.Model
func (m RunOnceModel) Init() tea.Cmd {
	// Immediately signal we're done after first render
	return tea.Quit
}

// Update implements tea.Model
func (m RunOnceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View implements tea.Model
func (m RunOnceModel) View() string {
	return m.content
}

// RenderOnce renders content using Bubble Tea's rendering engine and immediately exits.
// This provides consistent terminal rendering without requiring user interaction.
func RenderOnce(w io.Writer, content string) error {
	p := tea.NewProgram(NewRunOnceModel(content), tea.WithOutput(w), tea.WithInput(nil))
	_, err := p.Run()
	return err
}

// Printer provides methods for printing UI components to a writer
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintResults prints the completion summary and the answers box
func (p *Printer) PrintResults(title string, results engine.Results) {
	p.Println(NewProgress(title, results).SetWidth(p.width).Render())
	p.Newline()
	p.Println(NewAnswersResult("Form complete", results).SetWidth(p.width).Render())
}

// PrintFailure prints an error result box with troubleshooting tips
func (p *Printer) PrintFailure(title string, err error) {
	p.Println(NewFailureResult(title, err, Troubleshoot(err)).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// Output is the JSON document printed for a finished form
type Output struct {
	Title   string         `json:"title,omitempty"`
	Answers map[string]any `json:"answers"`
	Order   []string       `json:"order"`
	Skipped []string       `json:"skipped"`
}

// NewOutput collects results for encoding. Skipped questions appear in
// Skipped only.
func NewOutput(title string, results engine.Results) Output {
	out := Output{
		Title:   title,
		Answers: make(map[string]any),
		Order:   []string{},
		Skipped: []string{},
	}
	for _, a := range results {
		if a.Skipped {
			out.Skipped = append(out.Skipped, a.Name)
			continue
		}
		out.Answers[a.Name] = a.Result.Interface()
		out.Order = append(out.Order, a.Name)
	}
	return out
}

// PrintJSON writes the results as indented JSON
func (p *Printer) PrintJSON(title string, results engine.Results) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewOutput(title, results)); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
