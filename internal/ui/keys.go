package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	Newline     key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	Search      key.Binding
	Interactors key.Binding
	SelectMode  key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Quit        key.Binding

	Up         key.Binding
	Down       key.Binding
	ExpandUp   key.Binding
	ExpandDown key.Binding
	Home       key.Binding
	End        key.Binding
	Confirm    key.Binding
	Cancel     key.Binding

	Invoke     key.Binding
	InvokeAlt  key.Binding
	NextTarget key.Binding
	Pin        key.Binding
	Edit       key.Binding

	Save   key.Binding
	Commit key.Binding
	Reset  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Newline:     key.NewBinding(key.WithKeys("ctrl+j", "alt+enter"), key.WithHelp("C-j", "newline")),
		HistoryPrev: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older")),
		HistoryNext: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer")),
		Search:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "search history")),
		Interactors: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("C-o", "attach")),
		SelectMode:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("C-t", "select output")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("C-c", "quit")),

		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		ExpandUp:   key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("S-↑", "expand up")),
		ExpandDown: key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("S-↓", "expand down")),
		Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Invoke:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		InvokeAlt:  key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("M-enter", "ctrl-activate")),
		NextTarget: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next target")),
		Pin:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),

		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "save")),
		Commit: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("M-s", "commit")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "reset to saved")),
	}
}

// modeKeys adapts the bindings relevant to one mode to help.KeyMap.
type modeKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k modeKeys) ShortHelp() []key.Binding  { return k.short }
func (k modeKeys) FullHelp() [][]key.Binding { return k.full }

func (k keyMap) forMode(mode Mode) modeKeys {
	switch mode {
	case ModePopup:
		short := []key.Binding{k.Up, k.Down, k.ExpandUp, k.ExpandDown, k.Confirm, k.Cancel}
		return modeKeys{short: short, full: [][]key.Binding{short, {k.Home, k.End}}}
	case ModeSelect:
		short := []key.Binding{k.Up, k.Down, k.Invoke, k.InvokeAlt, k.NextTarget, k.Pin, k.Edit, k.Cancel}
		return modeKeys{short: short, full: [][]key.Binding{short}}
	case ModeEditor:
		short := []key.Binding{k.Save, k.Commit, k.Reset, k.Cancel}
		return modeKeys{short: short, full: [][]key.Binding{short}}
	}
	short := []key.Binding{k.Submit, k.HistoryPrev, k.HistoryNext, k.Search, k.Interactors, k.SelectMode, k.Quit}
	return modeKeys{short: short, full: [][]key.Binding{short, {k.Newline, k.ScrollUp, k.ScrollDown}}}
}
