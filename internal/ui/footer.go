package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/qbtui/internal/session"
)

// renderHeader renders the title line: app name, server and update time.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	cache := &m.st.Cache

	left := styles.Title.Render("qbtui") + " " + styles.MutedText.Render(m.st.Config.APIURL)

	var right string
	switch {
	case cache.IsOffline():
		right = styles.DangerText.Render("offline")
	case cache.LastUpdated.IsZero():
		right = styles.FaintText.Render("not loaded")
	default:
		right = styles.MutedText.Render(fmt.Sprintf("%d torrents · %s",
			len(cache.Torrents), cache.LastUpdated.Format(timestampLayout)))
	}

	gap := maxInt(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderFooter renders key help and the status line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	helpLine := m.help.View(footerHelp{session: m.keys, local: m.local, st: m.st})

	var status []string
	if m.pending {
		status = append(status, m.spinner.View()+" "+styles.MutedText.Render("working"))
	}
	if notice, ok := m.st.ActiveNotice(); ok {
		style := styles.SuccessText
		if notice.Level == session.NoticeError {
			style = styles.DangerText
		}
		status = append(status, style.Render(truncate(notice.Text, maxInt(10, m.width-12))))
	} else if err := m.st.Cache.LastError; err != nil {
		status = append(status, styles.WarningText.Render("last error: "+truncate(err.Error(), maxInt(10, m.width-24))))
	}
	if m.st.Mode != session.ModeNormal {
		status = append(status, styles.AccentText.Render("["+m.st.Mode.String()+"]"))
	}

	return styles.Footer.Width(m.width).Render(helpLine) + "\n" +
		styles.Footer.Width(m.width).Render(strings.Join(status, "  "))
}
