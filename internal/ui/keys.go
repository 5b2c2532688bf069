package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the picker bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Left     key.Binding
	Right    key.Binding
	Next     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Copy     key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the default bindings. vim adds hjkl.
func DefaultKeyMap(vim bool) KeyMap {
	up, down, left, right := []string{"up"}, []string{"down"}, []string{"left"}, []string{"right"}
	upHelp, downHelp, leftHelp, rightHelp := "↑", "↓", "←", "→"
	if vim {
		up, down, left, right = append(up, "k"), append(down, "j"), append(left, "h"), append(right, "l")
		upHelp, downHelp, leftHelp, rightHelp = "↑/k", "↓/j", "←/h", "→/l"
	}
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys(up...), key.WithHelp(upHelp, "previous")),
		Down:     key.NewBinding(key.WithKeys(down...), key.WithHelp(downHelp, "next")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "shift+up"), key.WithHelp("pgup", "fling up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "shift+down"), key.WithHelp("pgdn", "fling down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
		Left:     key.NewBinding(key.WithKeys(left...), key.WithHelp(leftHelp, "prev column")),
		Right:    key.NewBinding(key.WithKeys(right...), key.WithHelp(rightHelp, "next column")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle column")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc/q", "cancel")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Cancel, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Left, k.Right, k.Next},
		{k.Confirm, k.Cancel, k.Copy, k.Help},
	}
}
