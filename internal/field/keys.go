package field

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/impromptu/internal/terminal"
)

// textKeyMap defines key bindings for text and secret entry
type textKeyMap struct {
	Confirm     key.Binding
	Left        key.Binding
	Right       key.Binding
	Backspace   key.Binding
	Delete      key.Binding
	DeleteToEnd key.Binding
	Home        key.Binding
	End         key.Binding
}

// ShortHelp returns keybindings to be shown in the footer
func (k textKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Home, k.End, k.DeleteToEnd}
}

func newTextKeyMap() textKeyMap {
	return textKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "confirm"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "ctrl+b"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "ctrl+f"),
			key.WithHelp("→", "right"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
		),
		DeleteToEnd: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "clear to end"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("ctrl+a", "start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("ctrl+e", "end"),
		),
	}
}

// listKeyMap defines key bindings for choice and multi-choice lists
type listKeyMap struct {
	Confirm key.Binding
	Up      key.Binding
	Down    key.Binding
	Home    key.Binding
	End     key.Binding
	Toggle  key.Binding
	On      key.Binding
	Off     key.Binding
}

// ShortHelp returns keybindings to be shown in the footer. The toggle
// bindings are disabled for single choice lists and drop out.
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Confirm}
}

func newListKeyMap(multi bool) listKeyMap {
	k := listKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "confirm"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		On: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Off: key.NewBinding(
			key.WithKeys("left", "h"),
		),
	}
	if !multi {
		k.Toggle.SetEnabled(false)
		k.On.SetEnabled(false)
		k.Off.SetEnabled(false)
	}
	return k
}

// staticKeyMap defines the key binding that dismisses a message
type staticKeyMap struct {
	Continue key.Binding
}

// ShortHelp returns keybindings to be shown in the footer
func (k staticKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Continue}
}

func newStaticKeyMap() staticKeyMap {
	return staticKeyMap{
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
	}
}

// triggerBinding turns an update trigger into a binding. The empty trigger
// matches every key event.
func triggerBinding(trigger string) key.Binding {
	if trigger == "" {
		return key.Binding{}
	}
	return key.NewBinding(key.WithKeys(trigger))
}

func matchesTrigger(ev terminal.Event, trigger string, b key.Binding) bool {
	if ev.Type != terminal.EventKey {
		return false
	}
	if trigger == "" {
		return true
	}
	return key.Matches(ev, b)
}

// newFooter returns a help model that renders without escape sequences, so
// its output can be written cell by cell
func newFooter() help.Model {
	h := help.New()
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
	return h
}
