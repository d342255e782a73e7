package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	Newline     key.Binding
	Clear       key.Binding
	NextFocus   key.Binding
	Up          key.Binding
	Down        key.Binding
	Pick        key.Binding
	Back        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ToggleHelp  key.Binding
	Quit        key.Binding
	pickerFocus bool
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "ask")),
		Newline:    key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		NextFocus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "examples")),
		Up:         key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/k", "previous")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "right", "l"), key.WithHelp("↓/j", "next")),
		Pick:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/1-9", "use example")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp follows the focused area so the footer only lists keys that act.
func (k keyMap) ShortHelp() []key.Binding {
	if k.pickerFocus {
		return []key.Binding{k.Up, k.Down, k.Pick, k.Back, k.ToggleHelp, k.Quit}
	}
	return []key.Binding{k.Submit, k.Newline, k.NextFocus, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.Clear},
		{k.NextFocus, k.Up, k.Down, k.Pick, k.Back},
		{k.ScrollUp, k.ScrollDown, k.ToggleHelp, k.Quit},
	}
}
