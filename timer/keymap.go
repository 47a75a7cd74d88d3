package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	pause key.Binding
	swtch key.Binding
	quit  key.Binding
}

var defaultKeymap = keymap{
	pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	swtch: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "switch"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
