package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the lab.
type KeyMap struct {
	Submit     key.Binding
	ToggleMode key.Binding
	PickImage  key.Binding
	Editor     key.Binding
	Next       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Credential key.Binding
	Export     key.Binding
	Save       key.Binding
	NewLab     key.Binding
	Quit       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "text/image"),
		),
		PickImage: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "pick image"),
		),
		Editor: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "editor"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "n", " "),
			key.WithHelp("enter", "next step"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "enter", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Credential: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "api key"),
		),
		Export: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "export mermaid"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save transcript"),
		),
		NewLab: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new lab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}
