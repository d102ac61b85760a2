package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Fetch        key.Binding
	Ingest       key.Binding
	IngestQuotes key.Binding
	Cancel       key.Binding
	Wipe         key.Binding
	ToggleView   key.Binding
	SwitchTab    key.Binding
	Search       key.Binding
	Select       key.Binding
	Close        key.Binding
	Copy         key.Binding
	Slice        key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Fetch:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch")),
		Ingest:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "ingest characters")),
		IngestQuotes: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "ingest quotes")),
		Cancel:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard")),
		Wipe:         key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "wipe store")),
		ToggleView:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "raw/rendered")),
		SwitchTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "characters/movies")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy json")),
		Slice:        key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "slice")),
		ScrollUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Ingest, k.IngestQuotes, k.Cancel, k.Wipe, k.ToggleView, k.Search, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fetch, k.Ingest, k.IngestQuotes, k.Cancel, k.Wipe},
		{k.ToggleView, k.SwitchTab, k.Slice, k.Copy},
		{k.Search, k.Select, k.Close, k.ScrollUp, k.ScrollDown, k.Quit},
	}
}
