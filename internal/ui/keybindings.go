package ui

import "charm.land/bubbles/v2/key"

// KeyMap holds the viewer's bindings. Any key not bound here is ignored.
type KeyMap struct {
	Quit       key.Binding
	Down       key.Binding
	Up         key.Binding
	PageDown   key.Binding
	PageUp     key.Binding
	SwitchPane key.Binding
}

// DefaultKeyMap returns the bindings shown in the frame title: 7 exits, 3
// switches pane, Page Up/Down pages. q and ctrl+c quit as well since the
// terminal runs in raw mode.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("7", "q", "ctrl+c"),
			key.WithHelp("7/q", "exit"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "switch pane"),
		),
	}
}

// ShortHelp lists the bindings rendered in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.SwitchPane, k.Quit}
}
