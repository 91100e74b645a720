package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/qbtui/internal/session"
)

// keyMap holds the presentation keys handled by the UI itself. They only
// apply in Normal mode with no popup open and never produce a message.
type keyMap struct {
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding
	Close      key.Binding
}

// defaultKeyMap returns the default presentation key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostic log"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "?", "L"),
			key.WithHelp("esc", "Close"),
		),
	}
}

// footerHelp adapts the session key map to bubbles/help for the current
// state.
type footerHelp struct {
	session session.KeyMap
	local   keyMap
	st      *session.State
}

// ShortHelp implements help.KeyMap.
func (f footerHelp) ShortHelp() []key.Binding {
	bindings := f.session.ShortHelp(f.st)
	if f.st.Mode == session.ModeNormal && !f.st.InfoOpen {
		bindings = append(bindings, f.local.Help)
	}
	return bindings
}

// FullHelp implements help.KeyMap.
func (f footerHelp) FullHelp() [][]key.Binding {
	groups := f.session.FullHelp()
	return append(groups, []key.Binding{f.local.Help, f.local.CycleTheme, f.local.Logs})
}
