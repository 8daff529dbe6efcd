package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// up, down and filter are handled by the active [list.Model]; they are listed here for help rendering.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	next   key.Binding
	prev   key.Binding
	filter key.Binding
	export key.Binding
	rerun  key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next set")),
		prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "previous set")),
		filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export set")),
		rerun:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rerun")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.filter, k.export, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.filter},
		{k.next, k.prev},
		{k.export, k.rerun},
		{k.help, k.quit},
	}
}
