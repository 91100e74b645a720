package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/qbtui/internal/logtail"
)

// renderLogs renders the diagnostic log overlay, newest entries last.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	width := maxInt(30, m.width-4)
	height := maxInt(3, m.height-4)

	var lines []string
	switch {
	case m.logErr != nil:
		lines = append(lines, styles.DangerText.Render(m.logErr.Error()))
	case len(m.logEntries) == 0:
		lines = append(lines, styles.MutedText.Render("No log entries"))
	default:
		for _, e := range m.logEntries {
			lines = append(lines, m.formatLogEntry(e, width-4))
		}
	}
	if len(lines) > height-2 {
		lines = lines[len(lines)-(height-2):]
	}

	title := styles.Title.Render("Diagnostic log") + " " + styles.FaintText.Render(m.logPath)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1).
		Width(width).
		Render(title + "\n" + strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) formatLogEntry(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	if e.Raw != "" {
		return styles.MutedText.Render(truncate(e.Raw, width))
	}

	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05")
	}
	levelStyle := styles.MutedText
	switch e.Level {
	case "error", "fatal", "panic":
		levelStyle = styles.DangerText
	case "warn":
		levelStyle = styles.WarningText
	case "info":
		levelStyle = styles.InfoText
	}

	var extra []string
	if e.Err != "" {
		extra = append(extra, "error="+e.Err)
	}
	for _, f := range e.Fields {
		extra = append(extra, fmt.Sprintf("%s=%s", f.Key, f.Value))
	}
	text := e.Message
	if len(extra) > 0 {
		text += " " + strings.Join(extra, " ")
	}
	level := strings.ToUpper(padRight(e.Level, 5))
	return styles.FaintText.Render(ts) + " " + levelStyle.Render(level) + " " +
		styles.Text.Render(truncate(text, maxInt(10, width-16)))
}
