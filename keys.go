package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for termfolio
type KeyMap struct {
	// Windows
	Quit           key.Binding
	CycleWindow    key.Binding
	CloseWindow    key.Binding
	MinimizeWindow key.Binding
	MaximizeWindow key.Binding
	RestoreLast    key.Binding
	ToggleDebug    key.Binding
	CommandPalette key.Binding
	Help           key.Binding

	// Navigation inside a window
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Home   key.Binding
	End    key.Binding
	PgUp   key.Binding
	PgDn   key.Binding
	Select key.Binding
}

// DefaultKeyMap provides the default keybindings
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("C-c", "quit"),
	),
	CycleWindow: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle window"),
	),
	CloseWindow: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	MinimizeWindow: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "minimize"),
	),
	MaximizeWindow: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("F3", "maximize"),
	),
	RestoreLast: key.NewBinding(
		key.WithKeys("f4"),
		key.WithHelp("F4", "restore"),
	),
	ToggleDebug: key.NewBinding(
		key.WithKeys("f12"),
		key.WithHelp("F12", "debug"),
	),
	CommandPalette: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "commands"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "help"),
	),

	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev page"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next page"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "bottom"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PgDn: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
}

// ShortHelp returns keybindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleWindow, k.MinimizeWindow, k.MaximizeWindow, k.CommandPalette, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CycleWindow, k.CloseWindow, k.MinimizeWindow, k.MaximizeWindow},
		{k.RestoreLast, k.ToggleDebug, k.CommandPalette, k.Help},
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Home, k.End, k.PgUp, k.PgDn, k.Quit},
	}
}
