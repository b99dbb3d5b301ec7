package play

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Grab   key.Binding
	Move   key.Binding // help only
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Helper key.Binding
	End    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Grab: key.NewBinding(
			key.WithKeys("space", "enter"),
			key.WithHelp("Space", "grab"),
		),
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("↑↓←→", "move"),
		),
		Up:    key.NewBinding(key.WithKeys("up", "k")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
		Left:  key.NewBinding(key.WithKeys("left", "h")),
		Right: key.NewBinding(key.WithKeys("right", "l")),
		Helper: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("R", "ask robot"),
		),
		End: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "end"),
		),
	}
}
