package tui

import (
	"github.com/charmbracelet/bubbles/list"
)

// newList builds a list with minimal chrome. Filtering is driven by the app's own
// search input, never by the list.
func newList(title string, delegate list.ItemDelegate) list.Model {
	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// ESC closes panels here; only q quits.
	l.KeyMap.Quit.SetKeys("q")
	l.KeyMap.ForceQuit.SetKeys("ctrl+c")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)

	goToStartKeys := append([]string{}, l.KeyMap.GoToStart.Keys()...)
	goToStartKeys = append(goToStartKeys, "<")
	l.KeyMap.GoToStart.SetKeys(goToStartKeys...)

	// Letter aliases for paging collide with the workflow bindings.
	l.KeyMap.PrevPage.SetKeys("left", "pgup")
	l.KeyMap.NextPage.SetKeys("right", "pgdown")

	goToEndKeys := append([]string{}, l.KeyMap.GoToEnd.Keys()...)
	goToEndKeys = append(goToEndKeys, ">")
	l.KeyMap.GoToEnd.SetKeys(goToEndKeys...)
	return l
}
