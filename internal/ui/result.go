package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/impromptu/internal/engine"
	"github.com/muurk/impromptu/internal/field"
	"github.com/muurk/impromptu/internal/form"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Detail is one key/value line of a result box
type Detail struct {
	Key   string
	Value string
	Muted bool // Rendered in the muted color, e.g. skipped answers
}

// Result represents a result box (success, failure, or warning)
type Result struct {
	Type            ResultType // Success, failure, or warning
	Title           string     // e.g., "Form complete"
	Details         []Detail   // Key-value details to display, in order
	Error           error      // Error (for failure results)
	Troubleshooting []string   // Troubleshooting tips (for failure results)
	Width           int        // Terminal width
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, troubleshooting []string) *Result {
	return &Result{
		Type:            ResultFailure,
		Title:           title,
		Error:           err,
		Troubleshooting: troubleshooting,
		Width:           GetTerminalWidth(),
	}
}

// NewWarningResult creates a warning result box
func NewWarningResult(title string, details ...Detail) *Result {
	return &Result{
		Type:    ResultWarning,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewAnswersResult creates a success box listing every answer. Secrets
// are masked and skipped questions are muted.
func NewAnswersResult(title string, results engine.Results) *Result {
	r := NewSuccessResult(title)
	for _, a := range results {
		switch {
		case a.Skipped:
			r.Details = append(r.Details, Detail{Key: a.Name, Value: "(skipped)", Muted: true})
		case a.Kind == field.KindSecret:
			r.AddDetail(a.Name, strings.Repeat("*", len([]rune(a.Result.Value))))
		default:
			r.AddDetail(a.Name, a.Result.String())
		}
	}
	return r
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail adds a detail key-value pair
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Detail{Key: key, Value: value})
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := clampWidth(r.Width)

	var title string
	var box lipgloss.Style
	switch r.Type {
	case ResultFailure:
		title = ErrorTitleStyle.Render(fmt.Sprintf("   %s  FAILED  ─  %s", FailureMarker, r.Title))
		box = ErrorBoxStyle(width)
	case ResultWarning:
		title = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true).
			Render(fmt.Sprintf("   ⚠  WARNING  ─  %s", r.Title))
		box = WarningBoxStyle(width)
	default:
		title = SuccessTitleStyle.Render(fmt.Sprintf("   %s  SUCCESS  ─  %s", SuccessMarker, r.Title))
		box = SuccessBoxStyle(width)
	}

	lines := []string{"", title, ""}

	for _, d := range r.Details {
		value := ResultValueStyle.Render(d.Value)
		if d.Muted {
			value = StepSkippedStyle.Render(d.Value)
		}
		lines = append(lines, ResultKeyStyle.Render("   "+d.Key+":")+" "+value)
	}
	if len(r.Details) > 0 {
		lines = append(lines, "")
	}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+r.Error.Error()), "")
	}

	if len(r.Troubleshooting) > 0 {
		lines = append(lines, r.renderTroubleshootingBox(width), "")
	}

	return box.Render(strings.Join(lines, "\n"))
}

// renderTroubleshootingBox renders the inner troubleshooting box
func (r *Result) renderTroubleshootingBox(width int) string {
	lines := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
	for _, tip := range r.Troubleshooting {
		lines = append(lines, TroubleshootingItemStyle.Render("  • "+tip))
	}
	return TroubleshootingBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

// Troubleshoot returns tips for an error returned by a form run
func Troubleshoot(err error) []string {
	switch {
	case engine.IsTerminalError(err):
		return []string{
			"Run impromptu from an interactive terminal, not a pipe or CI job",
			"Check that TERM names a terminal your system knows (e.g. xterm-256color)",
		}
	case engine.IsHookError(err):
		return []string{
			"A jump could not be applied; merge only works inside a branch",
			"Run 'impromptu validate' on the form file",
			"Set IMPROMPTU_LOG_LEVEL=debug and inspect the log file for the flow",
		}
	case form.IsValidationError(err):
		return []string{"Fix the problems listed above and validate again"}
	default:
		return nil
	}
}
