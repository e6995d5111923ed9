package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the game screen
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Cancel    key.Binding
	Draw      key.Binding
	Promote   key.Binding
	NewGame   key.Binding
	Surrender key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Draw, k.Promote, k.NewGame, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Select, k.Cancel, k.Draw, k.Promote},
		{k.NewGame, k.Surrender, k.Help, k.Quit},
	}
}

// Keys are the default bindings
var Keys = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous pile"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l", "tab"),
		key.WithHelp("→/l", "next pile"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "deeper into run"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "towards top card"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "pick up / drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "put back"),
	),
	Draw: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "draw"),
	),
	Promote: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "to foundation"),
	),
	NewGame: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new game"),
	),
	Surrender: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "surrender"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
