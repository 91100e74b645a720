package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/qbtui/internal/session"
)

// scrollOffset returns the first rune to draw so that cursor stays visible in
// a field width runes wide. The cursor may sit one past the last rune.
func scrollOffset(cursor, length, width int) int {
	if width <= 0 {
		return 0
	}
	cursor = maxInt(0, minInt(cursor, length))
	if cursor < width {
		return 0
	}
	return cursor - width + 1
}

// renderInput draws one text field. The focused field shows a block cursor.
func (m Model) renderInput(label, value string, focused, masked bool, width int) string {
	styles := m.theme.Styles()

	runes := []rune(value)
	if masked {
		runes = []rune(strings.Repeat("*", len(runes)))
	}

	cursor := len(runes)
	if focused {
		cursor = m.st.Editor.Cursor()
	}
	offset := scrollOffset(cursor, len(runes), width)
	end := minInt(len(runes), offset+width)
	visible := runes[offset:end]

	var field string
	if focused {
		at := cursor - offset
		before := string(visible[:minInt(at, len(visible))])
		under := " "
		after := ""
		if at < len(visible) {
			under = string(visible[at])
			after = string(visible[at+1:])
		}
		field = styles.Text.Render(before) +
			lipgloss.NewStyle().Reverse(true).Render(under) +
			styles.Text.Render(after)
	} else {
		field = styles.MutedText.Render(string(visible))
	}

	border := m.theme.BorderMuted
	labelStyle := styles.MutedText
	if focused {
		border = m.theme.BorderFocus
		labelStyle = styles.AccentText.Bold(true)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(width + 1).
		Render(field)
	return labelStyle.Render(label) + "\n" + box
}

// renderConfigPopup renders the connection settings editor.
func (m Model) renderConfigPopup() string {
	styles := m.theme.Styles()
	width := m.popupWidth(PopupWidthPercent)
	fieldWidth := maxInt(10, width-8)

	s := &m.st.Scratch
	focus := m.st.Editor.Field()

	parts := []string{
		styles.Title.Render("Config"),
		m.renderInput(session.FieldURL.String(), s.Config.APIURL, focus == session.FieldURL, false, fieldWidth),
		m.renderInput(session.FieldUsername.String(), s.Config.Username, focus == session.FieldUsername, false, fieldWidth),
		m.renderInput(session.FieldPassword.String(), s.Config.Password, focus == session.FieldPassword, true, fieldWidth),
		styles.FaintText.Render("up/down field · ctrl+s save · esc cancel"),
	}
	if !m.st.Config.Configured() {
		parts = append(parts[:1], append([]string{styles.WarningText.Render("Enter your qBittorrent WebUI credentials to get started.")}, parts[1:]...)...)
	}
	return m.popupStyle(width).Render(strings.Join(parts, "\n"))
}

// renderAddPopup renders the add-torrent popup with Magnet/File tabs.
func (m Model) renderAddPopup() string {
	styles := m.theme.Styles()
	width := m.popupWidth(AddPopupWidthPercent)
	fieldWidth := maxInt(10, width-8)

	var tabs []string
	for _, tab := range []session.AddTab{session.AddMagnet, session.AddFile} {
		label := " " + tab.String() + " "
		if tab == m.st.AddTab {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}

	var input string
	if m.st.AddTab == session.AddFile {
		input = m.renderInput(session.FieldFilePath.String(), m.st.Scratch.FilePath, true, false, fieldWidth)
	} else {
		input = m.renderInput(session.FieldMagnet.String(), m.st.Scratch.Magnet, true, false, fieldWidth)
	}

	parts := []string{
		styles.Title.Render("Add Torrent"),
		strings.Join(tabs, styles.FaintText.Render("│")),
		input,
		styles.FaintText.Render("tab switch · enter add · esc cancel"),
	}
	return m.popupStyle(width).Render(strings.Join(parts, "\n"))
}
