package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the kiosk key bindings. On a touch panel these are mapped
// to on-screen buttons by the terminal emulator.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	Browse  key.Binding
	Return  key.Binding
	TestRun key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Browse: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "borrow"),
	),
	Return: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "return"),
	),
	TestRun: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "test scan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
