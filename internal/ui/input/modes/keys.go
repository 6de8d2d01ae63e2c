package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings.
type KeyMap struct {
	Down       key.Binding
	Up         key.Binding
	First      key.Binding
	Last       key.Binding
	Jump       key.Binding
	ToggleSnap key.Binding
	Search     key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	Pager      key.Binding
	Reload     key.Binding
	Destroy    key.Binding
	Help       key.Binding
	HelpPager  key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.ToggleSnap, k.Search, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.First, k.Last, k.Jump},
		{k.ToggleSnap, k.Search, k.NextMatch, k.PrevMatch},
		{k.Pager, k.Reload, k.Destroy, k.HelpPager, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the bindings used by the viewer.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down", "j", "pgdown", " "),
			key.WithHelp("↓/j/space", "next section"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/k", "previous section"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first section"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last section"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to section"),
		),
		ToggleSnap: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "pause/resume snapping"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find section"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous match"),
		),
		Pager: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open section in pager"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload document"),
		),
		Destroy: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "restore plain layout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		HelpPager: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "help in pager"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}
