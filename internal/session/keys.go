package session

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap maps key presses to messages for every mode.
type KeyMap struct {
	// Normal mode
	Quit       key.Binding
	Refresh    key.Binding
	Config     key.Binding
	AddTorrent key.Binding
	OpenInfo   key.Binding
	CloseInfo  key.Binding
	Up         key.Binding
	Down       key.Binding
	PrevTab    key.Binding
	NextTab    key.Binding

	// Popups
	ForceQuit   key.Binding
	Cancel      key.Binding
	Save        key.Binding
	Submit      key.Binding
	SwitchAdd   key.Binding
	PrevField   key.Binding
	NextField   key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Backspace   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Config: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "Config"),
		),
		AddTorrent: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add torrent"),
		),
		OpenInfo: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "Info"),
		),
		CloseInfo: key.NewBinding(
			key.WithKeys("tab", "esc", "enter"),
			key.WithHelp("esc", "Close info"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next tab"),
		),

		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+e"),
			key.WithHelp("esc", "Cancel"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Add"),
		),
		SwitchAdd: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Magnet/File"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "Previous field"),
		),
		NextField: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "Next field"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Cursor left"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Cursor right"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "Delete"),
		),
	}
}

// Handle applies a key press to st. Movement and editing change st directly
// and return None; everything else is returned as a message.
func (k KeyMap) Handle(st *State, msg tea.KeyMsg) Message {
	switch st.Mode {
	case ModeConfigEditor:
		return k.handleConfig(st, msg)
	case ModeAddTorrent:
		return k.handleAdd(st, msg)
	default:
		if st.InfoOpen {
			return k.handleInfo(st, msg)
		}
		return k.handleNormal(st, msg)
	}
}

func (k KeyMap) handleNormal(st *State, msg tea.KeyMsg) Message {
	switch {
	case key.Matches(msg, k.Quit):
		return Quit
	case key.Matches(msg, k.Refresh):
		return RefreshTorrents
	case key.Matches(msg, k.Config):
		return ToggleConfigEditor
	case key.Matches(msg, k.AddTorrent):
		return ToggleAddTorrentPopup
	case key.Matches(msg, k.OpenInfo):
		return ToggleInfoPopup
	case key.Matches(msg, k.Down):
		st.MoveTable(1)
	case key.Matches(msg, k.Up):
		st.MoveTable(-1)
	}
	return None
}

func (k KeyMap) handleInfo(st *State, msg tea.KeyMsg) Message {
	switch {
	case key.Matches(msg, k.ForceQuit), msg.String() == "q":
		return Quit
	case key.Matches(msg, k.CloseInfo):
		return ToggleInfoPopup
	case key.Matches(msg, k.Refresh):
		return RefreshTorrents
	case key.Matches(msg, k.NextTab):
		st.SetInfoTab(st.InfoTab.Next())
		return st.InfoTab.FetchMessage()
	case key.Matches(msg, k.PrevTab):
		st.SetInfoTab(st.InfoTab.Previous())
		return st.InfoTab.FetchMessage()
	case key.Matches(msg, k.Down):
		st.MoveSublist(1)
	case key.Matches(msg, k.Up):
		st.MoveSublist(-1)
	}
	return None
}

func (k KeyMap) handleConfig(st *State, msg tea.KeyMsg) Message {
	switch {
	case key.Matches(msg, k.ForceQuit):
		return Quit
	case key.Matches(msg, k.Cancel):
		return ToggleConfigEditor
	case key.Matches(msg, k.Save):
		return SaveConfig
	case key.Matches(msg, k.PrevField):
		st.Editor.PreviousConfigField(&st.Scratch)
	case key.Matches(msg, k.NextField):
		st.Editor.NextConfigField(&st.Scratch)
	default:
		k.edit(st, msg)
	}
	return None
}

func (k KeyMap) handleAdd(st *State, msg tea.KeyMsg) Message {
	switch {
	case key.Matches(msg, k.ForceQuit):
		return Quit
	case msg.Type == tea.KeyEsc:
		return ToggleAddTorrentPopup
	case key.Matches(msg, k.SwitchAdd):
		st.AddTab = st.AddTab.Toggle()
		st.Editor.Focus(&st.Scratch, st.AddTab.Field())
	case key.Matches(msg, k.Submit):
		if st.AddTab == AddFile {
			return AddTorrentByFile
		}
		return AddTorrentByMagnet
	default:
		k.edit(st, msg)
	}
	return None
}

// edit applies cursor and text keys to the focused field.
func (k KeyMap) edit(st *State, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, k.CursorLeft):
		st.Editor.Move(&st.Scratch, -1)
	case key.Matches(msg, k.CursorRight):
		st.Editor.Move(&st.Scratch, 1)
	case key.Matches(msg, k.Backspace):
		st.Editor.DeleteBeforeCursor(&st.Scratch)
	case msg.Type == tea.KeySpace:
		st.Editor.Insert(&st.Scratch, ' ')
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			st.Editor.Insert(&st.Scratch, r)
		}
	}
}

// ShortHelp returns the bindings shown in the footer for st.
func (k KeyMap) ShortHelp(st *State) []key.Binding {
	switch st.Mode {
	case ModeConfigEditor:
		return []key.Binding{k.Save, k.Cancel, k.NextField, k.ForceQuit}
	case ModeAddTorrent:
		return []key.Binding{k.Submit, k.SwitchAdd, k.Cancel, k.ForceQuit}
	default:
		if st.InfoOpen {
			return []key.Binding{k.PrevTab, k.NextTab, k.Down, k.CloseInfo}
		}
		return []key.Binding{k.Down, k.OpenInfo, k.AddTorrent, k.Refresh, k.Config, k.Quit}
	}
}

// FullHelp returns every binding grouped by context.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.OpenInfo, k.Refresh, k.AddTorrent, k.Config, k.Quit},
		{k.PrevTab, k.NextTab, k.CloseInfo},
		{k.PrevField, k.NextField, k.CursorLeft, k.CursorRight, k.Backspace, k.Save, k.Cancel},
		{k.SwitchAdd, k.Submit, k.ForceQuit},
	}
}
