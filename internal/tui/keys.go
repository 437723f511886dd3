package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	Enter key.Binding
	Back  key.Binding

	Quit           key.Binding
	Help           key.Binding
	Filter         key.Binding
	Refresh        key.Binding
	RefreshAll     key.Binding
	PreferThumb    key.Binding
	PreferBackdrop key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "left", "backspace", "esc"),
			key.WithHelp("h/←", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		RefreshAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh all"),
		),
		PreferThumb: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "prefer thumb"),
		),
		PreferBackdrop: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "prefer backdrop"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Filter, k.PreferThumb, k.PreferBackdrop, k.Refresh, k.Quit}
}

// FullHelp lists every binding
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Back, k.Filter},
		{k.PreferThumb, k.PreferBackdrop},
		{k.Refresh, k.RefreshAll, k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
