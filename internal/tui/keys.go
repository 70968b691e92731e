package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tree       key.Binding
	Lemon      key.Binding
	Glass      key.Binding
	EmptyGlass key.Binding
	Tap        key.Binding
	Help       key.Binding
	Suspend    key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Tree:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tree")),
		Lemon:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lemon")),
		Glass:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "glass")),
		EmptyGlass: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "empty glass")),
		Tap:        key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "tap")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Suspend:    key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "suspend")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tree, k.Lemon, k.Glass, k.EmptyGlass},
		{k.Tap, k.Suspend, k.Help, k.Quit},
	}
}
