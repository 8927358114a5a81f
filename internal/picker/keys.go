package picker

import "github.com/charmbracelet/bubbles/key"

// Keys are the picker bindings. Plain letters always go to the query box.
type Keys struct {
	Up     key.Binding
	Down   key.Binding
	Run    key.Binding
	Cancel key.Binding
}

var keys = Keys{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p", "shift+tab"),
		key.WithHelp("↑", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n", "tab"),
		key.WithHelp("↓", "next"),
	),
	Run: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("Esc", "cancel"),
	),
}
