package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevSession key.Binding
	NextSession key.Binding
	Up          key.Binding
	Down        key.Binding
	Book        key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevSession: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous session")),
		NextSession: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next session")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous room")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next room")),
		Book:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "book room")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevSession, k.NextSession, k.Book, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevSession, k.NextSession},
		{k.Up, k.Down},
		{k.Book, k.Refresh},
		{k.Help, k.Quit},
	}
}
