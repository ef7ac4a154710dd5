package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/impromptu/internal/engine"
)

// StepStatus represents how a question ended
type StepStatus int

const (
	StepAnswered StepStatus = iota
	StepSkipped
)

// Step represents a single question in the completion summary
type Step struct {
	Number int        // Step number (1-based)
	Name   string     // Question name
	Status StepStatus // Answered or skipped
	Note   string     // Optional note, e.g. "3 items"
}

// Progress shows how much of a form was answered: a bar plus one line per
// question
type Progress struct {
	Label     string  // e.g., "Lunch order"
	Steps     []Step  // One per question, in result order
	Percent   float64 // Answered share (0.0 - 1.0)
	Width     int     // Terminal width
	ShowBar   bool    // Whether to show progress bar
	ShowSteps bool    // Whether to show step list
	bar       progress.Model
}

// NewProgress builds the completion summary of a run
func NewProgress(label string, results engine.Results) *Progress {
	p := &Progress{
		Label:     label,
		ShowBar:   true,
		ShowSteps: true,
	}
	answered := 0
	for i, a := range results {
		step := Step{Number: i + 1, Name: a.Name, Status: StepAnswered}
		if a.Skipped {
			step.Status = StepSkipped
		} else {
			answered++
			if a.Result.List {
				step.Note = fmt.Sprintf("%d items", len(a.Result.Values))
			}
		}
		p.Steps = append(p.Steps, step)
	}
	if len(results) > 0 {
		p.Percent = float64(answered) / float64(len(results))
	}
	return p.SetWidth(GetTerminalWidth())
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	// Leave room for percentage and step count
	barWidth := min(max(width-20, 20), 50)
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
	)
	return p
}

// Answered returns how many questions were answered
func (p *Progress) Answered() int {
	n := 0
	for _, s := range p.Steps {
		if s.Status == StepAnswered {
			n++
		}
	}
	return n
}

// Render returns the styled completion summary as a string
func (p *Progress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(ProgressLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	if p.ShowBar {
		b.WriteString(p.renderProgressBar())
		b.WriteString("\n\n")
	}

	if p.ShowSteps {
		lines := make([]string, len(p.Steps))
		for i, step := range p.Steps {
			lines[i] = p.renderStepLine(step)
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	return b.String()
}

// renderProgressBar renders the progress bar line
func (p *Progress) renderProgressBar() string {
	barView := p.bar.ViewAs(p.Percent)
	percentStr := fmt.Sprintf("%3.0f%%", p.Percent*100)
	countStr := fmt.Sprintf("[%d/%d]", p.Answered(), len(p.Steps))

	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  %s  %s", barView, percentStr, countStr))
}

// renderStepLine renders a single question line
func (p *Progress) renderStepLine(step Step) string {
	prefix := fmt.Sprintf("  [%d/%d]", step.Number, len(p.Steps))

	marker, style := StepMarkerAnswered, StepAnsweredStyle
	if step.Status == StepSkipped {
		marker, style = StepMarkerSkipped, StepSkippedStyle
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(style.Render(step.Name))

	// keep markers in one column
	padding := max(30-lipgloss.Width(step.Name), 1)
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(style.Render(marker))

	if step.Note != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Note + ")"))
	}
	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}
