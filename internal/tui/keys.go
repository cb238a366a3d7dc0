package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the panel screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Toggle     key.Binding
	SwitchPane key.Binding
	Allow      key.Binding
	Mode       key.Binding
	PriorWork  key.Binding
	Calculate  key.Binding
	Export     key.Binding
	ChangeItem key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap is used by NewModel.
var DefaultKeyMap = KeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "lower level")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "higher level")),
	Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle level")),
	SwitchPane: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
	Allow:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "allow incompatible")),
	Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "optimize for")),
	PriorWork:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "anvil uses")),
	Calculate:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calculate")),
	Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export xlsx")),
	ChangeItem: key.NewBinding(key.WithKeys("i", "esc"), key.WithHelp("i", "change item")),
	ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll result")),
	ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll result")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SwitchPane, k.Calculate, k.ChangeItem, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.SwitchPane, k.Allow, k.Mode},
		{k.PriorWork, k.Calculate, k.Export, k.ChangeItem},
		{k.ScrollUp, k.ScrollDown, k.Help, k.Quit},
	}
}
