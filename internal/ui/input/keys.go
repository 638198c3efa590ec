package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the widget
type KeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	First      key.Binding
	Last       key.Binding
	Commit     key.Binding
	TabCommit  key.Binding
	Dismiss    key.Binding
	RemoveLast key.Binding
	Clear      key.Binding
	Search     key.Binding
	Help       key.Binding
	HelpPager  key.Binding
	Submit     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Next:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		First:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		Last:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		TabCommit:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select, keep open")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		RemoveLast: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "remove last")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")),
		Search:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "search now")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help")),
		HelpPager:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "all keys")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Commit, k.Dismiss, k.Submit, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.PageUp, k.PageDown, k.First, k.Last},
		{k.Commit, k.TabCommit, k.Dismiss, k.RemoveLast, k.Clear},
		{k.Search, k.Submit, k.Quit, k.Help, k.HelpPager},
	}
}
