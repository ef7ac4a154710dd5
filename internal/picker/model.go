package picker

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/impromptu/internal/ui"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	entries []*Entry
	err     error
}

// keyMap defines key bindings for the form list
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Filter key.Binding
	Rescan key.Binding
	Open   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Filter, k.Rescan, k.Open, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Filter},
		{k.Rescan, k.Open, k.Quit},
	}
}

// pathKeyMap defines key bindings while a path is typed in
type pathKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pathKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k pathKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

// entryItem wraps an Entry for use with bubbles/list
type entryItem struct {
	entry *Entry
}

// FilterValue implements list.Item
func (i entryItem) FilterValue() string {
	return i.entry.Title + " " + filepath.Base(i.entry.Path)
}

// entryDelegate renders each form as a bordered card
type entryDelegate struct {
	width int
}

func (d entryDelegate) Height() int { return 6 } // 4 lines plus borders

func (d entryDelegate) Spacing() int { return 1 }

func (d entryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(entryItem)
	if !ok {
		return
	}
	e := it.entry
	selected := index == m.Index()

	var content strings.Builder
	if selected {
		content.WriteString(SelectedStyle.Render("→ " + e.Title))
	} else {
		content.WriteString("  " + e.Title)
	}
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("  File:      %s\n", filepath.Base(e.Path)))
	if e.Detached > 0 {
		content.WriteString(fmt.Sprintf("  Questions: %d (%d detached)\n", e.Questions, e.Detached))
	} else {
		content.WriteString(fmt.Sprintf("  Questions: %d\n", e.Questions))
	}
	if e.Valid() {
		content.WriteString("  Status:    " + validStyle.Render("Ready"))
	} else {
		content.WriteString("  Status:    " + invalidStyle.Render(e.Problem()))
	}

	cardWidth := min(max(d.width-4, ui.MinTerminalWidth-8), ui.MaxContentWidth-8) // margin and border
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.MutedColor).
		Padding(0, 1).
		MarginLeft(2).
		Width(cardWidth).
		MaxHeight(d.Height())
	if selected {
		card = card.BorderForeground(ui.PrimaryColor)
	}
	fmt.Fprint(w, card.Render(content.String()))
}

// Model is the form picker screen
type Model struct {
	Dir string

	Scanning  bool
	ScanStart time.Time
	List      list.Model
	Selected  bool
	Err       error

	// PathMode is on while a file path is typed in
	PathMode  bool
	PathInput textinput.Model

	Width    int
	Height   int
	Spinner  spinner.Model
	Help     help.Model
	Keys     keyMap
	PathKeys pathKeyMap
}

// New creates a picker over the form files in dir
func New(dir string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	in := textinput.New()
	in.Placeholder = "path/to/form.yaml"
	in.Width = 40

	l := list.New([]list.Item{}, entryDelegate{width: ui.MinTerminalWidth - 4}, ui.MinTerminalWidth-4, 20)
	l.Title = "Forms"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle

	return Model{
		Dir:       dir,
		List:      l,
		PathInput: in,
		Spinner:   s,
		Help:      help.New(),
		Keys: keyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Enter: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "run"),
			),
			Filter: key.NewBinding(
				key.WithKeys("/"),
				key.WithHelp("/", "filter"),
			),
			Rescan: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rescan"),
			),
			Open: key.NewBinding(
				key.WithKeys("o"),
				key.WithHelp("o", "open path"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		PathKeys: pathKeyMap{
			Confirm: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "add"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
	}
}

// Init starts the first scan
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		m.scan(),
		m.Spinner.Tick,
	)
}

func (m Model) scan() tea.Cmd {
	dir := m.Dir
	return func() tea.Msg {
		entries, err := Scan(dir)
		return scanCompleteMsg{entries: entries, err: err}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.PathMode {
			return m.updatePathMode(msg)
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.SetDelegate(entryDelegate{width: msg.Width - 4})
		m.List.SetSize(msg.Width-4, max(msg.Height-8, 0))

	case scanStartMsg:
		m.Scanning = true
		m.ScanStart = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = entryItem{entry: e}
		}
		return m, m.List.SetItems(items)

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if !m.PathMode && !m.Scanning {
		m.List, cmd = m.List.Update(msg)
	}
	return m, cmd
}

// updateNormalMode handles keys while the list is shown
func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// the filter input owns every key while it is open
	if m.List.FilterState() == list.Filtering {
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Enter):
		if e := m.current(); e != nil {
			if !e.Valid() {
				return m, m.List.NewStatusMessage(invalidStyle.Render(e.Problem()))
			}
			m.Selected = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.Keys.Rescan):
		m.Err = nil
		return m, tea.Batch(
			m.List.SetItems([]list.Item{}),
			func() tea.Msg { return scanStartMsg{} },
			m.scan(),
			m.Spinner.Tick,
		)

	case key.Matches(msg, m.Keys.Open):
		m.PathMode = true
		m.PathInput.SetValue("")
		return m, m.PathInput.Focus()
	}

	if m.Scanning {
		return m, nil
	}
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// updatePathMode handles keys while a path is typed in
func (m Model) updatePathMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.PathKeys.Cancel), msg.String() == "ctrl+c":
		m.PathMode = false
		m.PathInput.SetValue("")
		m.PathInput.Blur()
		return m, nil

	case key.Matches(msg, m.PathKeys.Confirm):
		value := strings.TrimSpace(m.PathInput.Value())
		if value == "" {
			return m, nil
		}
		items := append([]list.Item{entryItem{entry: Load(value)}}, m.List.Items()...)
		cmd = m.List.SetItems(items)
		m.List.Select(0)
		m.PathMode = false
		m.PathInput.SetValue("")
		m.PathInput.Blur()
		return m, cmd
	}

	m.PathInput, cmd = m.PathInput.Update(msg)
	return m, cmd
}

func (m Model) current() *Entry {
	if it, ok := m.List.SelectedItem().(entryItem); ok {
		return it.entry
	}
	return nil
}

// View renders the picker
func (m Model) View() string {
	var content, helpText string
	switch {
	case m.PathMode:
		content = m.renderPathEntry()
		helpText = m.Help.View(m.PathKeys)
	case m.Scanning:
		content = m.renderScanning()
		helpText = m.Help.View(m.Keys)
	default:
		content = m.renderEntries()
		helpText = m.Help.View(m.Keys)
	}
	return renderContainer(content, m.Dir, helpText, m.Width, m.Height)
}

func (m Model) renderScanning() string {
	elapsed := time.Since(m.ScanStart).Round(time.Millisecond)
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		TitleStyle.Render(m.Spinner.View()+" LOADING FORMS"),
		SubtitleStyle.Render(fmt.Sprintf("Validating form files in %s (%s)", m.Dir, elapsed)),
	)
}

func (m Model) renderEntries() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(ui.ErrorMessageStyle.Render(fmt.Sprintf("  Scan failed: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Check that the directory exists and is readable\n")
		b.WriteString("    • Press o to type the path of a form file instead\n")

	case len(m.List.Items()) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(ui.WarningColor).Bold(true).
			Render(fmt.Sprintf("  ⚠ No form files in %s", m.Dir)))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("    • Forms are files ending in %s\n", strings.Join(Extensions, " or ")))
		b.WriteString("    • Press o to type the path of a form file instead\n")

	default:
		b.WriteString(m.List.View())
	}
	return b.String()
}

func (m Model) renderPathEntry() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Open a form file"))
	b.WriteString("\n\n")
	b.WriteString("  Path: ")
	b.WriteString(m.PathInput.View())
	b.WriteString("\n")
	return b.String()
}

// Selection returns the chosen entry, or nil if the user quit
func (m Model) Selection() *Entry {
	if !m.Selected {
		return nil
	}
	return m.current()
}

// Run shows the picker full screen and returns the chosen entry, or nil if
// the user quit without choosing
func Run(dir string) (*Entry, error) {
	final, err := tea.NewProgram(New(dir), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return m.Selection(), nil
}
