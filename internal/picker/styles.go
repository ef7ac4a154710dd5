package picker

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/impromptu/internal/ui"
	"github.com/muurk/impromptu/internal/version"
)

// AppName is shown in the container header
const AppName = "IMPROMPTU"

var (
	// TitleStyle is for screen titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true).
			Padding(1, 0)

	// SubtitleStyle is for secondary lines
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor).
			Italic(true)

	// SelectedStyle marks the highlighted card title
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true)

	// SpinnerStyle colors the loading spinner
	SpinnerStyle = lipgloss.NewStyle().Foreground(ui.PrimaryColor)

	validStyle   = lipgloss.NewStyle().Foreground(ui.SuccessColor).Bold(true)
	invalidStyle = lipgloss.NewStyle().Foreground(ui.ErrorColor).Bold(true)
)

// renderContainer wraps a screen with the header, the help footer and an
// outer border. Zero sizes fall back to the minimum width and no fixed
// height.
func renderContainer(content, dir, helpText string, width, height int) string {
	if width == 0 {
		width = ui.MinTerminalWidth
	}
	inner := width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(ui.PrimaryColor).Bold(true).Render(AppName+" "+version.Version),
		" ",
		lipgloss.NewStyle().Foreground(ui.MutedColor).Render(dir),
	)
	header = lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(ui.PrimaryColor).
		Width(inner).
		Padding(0, 1).
		Render(header)

	footer := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(ui.PrimaryColor).
		Width(inner).
		Padding(0, 1).
		Foreground(ui.MutedColor).
		Render(helpText)

	body := lipgloss.NewStyle().Width(inner)
	if height > 0 {
		// 2 for the outer border
		if h := height - 2 - lipgloss.Height(header) - lipgloss.Height(footer); h > 0 {
			body = body.Height(h)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.PrimaryColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body.Render(content), footer))
}
