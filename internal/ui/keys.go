package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings for the face
type keyMap struct {
	Tap     key.Binding
	Later   key.Binding
	Earlier key.Binding
	Quit    key.Binding
}

// newKeyMap returns the face bindings. The time shifting keys only work in
// debug mode.
func newKeyMap(debug bool) keyMap {
	k := keyMap{
		Tap: key.NewBinding(
			key.WithKeys(" ", "t"),
			key.WithHelp("space/t", "time/date"),
		),
		Later: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "+5 min"),
		),
		Earlier: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "-5 min"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	k.Later.SetEnabled(debug)
	k.Earlier.SetEnabled(debug)
	return k
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Later, k.Earlier, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tap, k.Later, k.Earlier, k.Quit},
	}
}
