package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings.
type keyMap struct {
	Quit key.Binding

	// Screen switching
	Dashboard key.Binding
	Radar     key.Binding
	Spotter   key.Binding
	Settings  key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Settings editor
	Increment key.Binding
	Decrement key.Binding
	Toggle    key.Binding
	Save      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Radar: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "radar"),
		),
		Spotter: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "spotter"),
		),
		Settings: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "settings"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "increase"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "decrease"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
	}
}
