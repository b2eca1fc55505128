package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the note browser.
type KeyMap struct {
	Down      key.Binding
	Up        key.Binding
	Enter     key.Binding
	Edit      key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Commit    key.Binding
	Cancel    key.Binding
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Quit}
}

var keys = KeyMap{
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Enter: key.NewBinding(
		key.WithKeys("e", "enter", "l", "right"),
		key.WithHelp("e", "open note"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Back: key.NewBinding(
		key.WithKeys("q", "esc", "h", "left"),
		key.WithHelp("q", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
