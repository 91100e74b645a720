package ui

import (
	"fmt"
	"strings"

	qbt "github.com/autobrr/go-qbittorrent"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/qbtui/internal/qbit"
	"github.com/five82/qbtui/internal/session"
)

func (m Model) popupWidth(percent int) int {
	return maxInt(30, m.width*percent/100)
}

func (m Model) popupStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(width)
}

// renderInfoPopup renders the torrent info popup with its tab bar.
func (m Model) renderInfoPopup(height int) string {
	styles := m.theme.Styles()
	width := m.popupWidth(PopupWidthPercent)
	inner := width - 4

	t, ok := m.st.SelectedTorrent()
	if !ok {
		return m.popupStyle(width).Render(styles.MutedText.Render("No torrent selected"))
	}

	var tabs []string
	for _, tab := range session.InfoTabs() {
		label := " " + tab.String() + " "
		if tab == m.st.InfoTab {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}

	bodyHeight := maxInt(3, height-6)
	var body string
	switch m.st.InfoTab {
	case session.TabFiles:
		body = m.renderFiles(inner, bodyHeight)
	case session.TabTrackers:
		body = m.renderTrackers(inner, bodyHeight)
	case session.TabPeers:
		body = m.renderPeers(inner, bodyHeight)
	default:
		body = m.renderDetails(t, inner)
	}

	content := styles.Title.Render(truncate(t.Name, inner)) + "\n" +
		strings.Join(tabs, styles.FaintText.Render("│")) + "\n" +
		styles.FaintText.Render(strings.Repeat("─", inner)) + "\n" +
		body
	return m.popupStyle(width).Render(content)
}

func (m Model) renderDetails(t qbt.Torrent, width int) string {
	styles := m.theme.Styles()

	bar := m.progress
	bar.Width = maxInt(10, width-10)
	progressLine := bar.ViewAs(t.Progress) + " " + styles.Text.Render(formatPercent(t.Progress))

	transfer := [][2]string{
		{"Downloaded", formatBytes(t.Downloaded)},
		{"Uploaded", formatBytes(t.Uploaded)},
		{"DL Speed", formatRate(t.DlSpeed)},
		{"UL Speed", formatRate(t.UpSpeed)},
		{"ETA", formatETA(t.ETA)},
		{"Ratio", formatRatio(t.Ratio)},
		{"Seeds", fmt.Sprintf("%d (%d)", t.NumSeeds, t.NumComplete)},
		{"Leechers", fmt.Sprintf("%d (%d)", t.NumLeechs, t.NumIncomplete)},
	}
	information := [][2]string{
		{"Size", formatBytes(t.Size)},
		{"State", qbit.StateLabel(t.State)},
		{"Added On", formatTimestamp(t.AddedOn)},
		{"Completed On", formatTimestamp(t.CompletionOn)},
		{"Save Path", t.SavePath},
		{"Category", t.Category},
		{"Tags", t.Tags},
		{"Hash", t.Hash},
		{"Tracker", t.Tracker},
	}

	colWidth := maxInt(20, (width-2)/2)
	left := m.renderGrid("Transfer", transfer, colWidth)
	right := m.renderGrid("Information", information, colWidth)

	var grids string
	if width >= 70 {
		grids = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	} else {
		grids = left + "\n\n" + m.renderGrid("Information", information, width)
	}
	return progressLine + "\n\n" + grids
}

func (m Model) renderGrid(title string, rows [][2]string, width int) string {
	styles := m.theme.Styles()
	labelWidth := 14
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "-"
		}
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(padRight(row[0], labelWidth)))
		b.WriteString(styles.Text.Render(truncateMiddle(value, maxInt(4, width-labelWidth))))
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// sublistTable renders header and rows windowed around the sublist selection.
func (m Model) sublistTable(headers []string, widths []int, rows [][]string, height int, colorFor func(row int) string) string {
	styles := m.theme.Styles()
	if len(rows) == 0 {
		return styles.MutedText.Render("Nothing to show")
	}

	format := func(cells []string) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = padRight(truncateMiddle(c, widths[i]), widths[i])
		}
		return strings.Join(out, " ")
	}

	lines := []string{styles.AccentText.Bold(true).Render(format(headers))}
	visible := maxInt(1, height-1)
	selected, hasSel := m.st.Sublist.Selected()
	start := windowStart(selected, len(rows), visible)
	end := minInt(len(rows), start+visible)
	for i := start; i < end; i++ {
		line := format(rows[i])
		switch {
		case hasSel && i == selected:
			line = styles.Selected.Render(line)
		case colorFor != nil:
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(colorFor(i))).Render(line)
		default:
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}
	if len(rows) > visible {
		lines = append(lines, styles.FaintText.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(rows))))
	}
	return strings.Join(lines, "\n")
}

// flexWidths gives the first column whatever fixed columns leave over.
func flexWidths(total int, fixed ...int) []int {
	rest := total
	for _, w := range fixed {
		rest -= w + 1
	}
	return append([]int{maxInt(10, rest)}, fixed...)
}

func (m Model) renderFiles(width, height int) string {
	files := m.st.Cache.Files
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.Name, formatBytes(f.Size), formatPercent(f.Progress), priorityLabel(f.Priority)})
	}
	return m.sublistTable(
		[]string{"Name", "Size", "Progress", "Priority"},
		flexWidths(width, 11, 9, 9),
		rows, height, nil,
	)
}

func (m Model) renderTrackers(width, height int) string {
	trackers := m.st.Cache.Trackers
	rows := make([][]string, 0, len(trackers))
	colors := make([]string, 0, len(trackers))
	for _, tr := range trackers {
		label := qbit.TrackerStatusLabel(tr.Status)
		rows = append(rows, []string{
			tr.Url,
			label,
			fmt.Sprint(tr.NumPeers),
			fmt.Sprint(tr.NumSeeds),
			fmt.Sprint(tr.NumLeechers),
			tr.Message,
		})
		colors = append(colors, m.theme.TrackerColor(label))
	}
	return m.sublistTable(
		[]string{"URL", "Status", "Peers", "Seeds", "Leechers", "Message"},
		flexWidths(width, 13, 6, 6, 8, 16),
		rows, height, func(i int) string { return colors[i] },
	)
}

func (m Model) renderPeers(width, height int) string {
	addrs := m.st.Cache.PeerAddrs()
	rows := make([][]string, 0, len(addrs))
	for _, addr := range addrs {
		p := qbit.PeerInfo(m.st.Cache.Peers[addr])
		rows = append(rows, []string{
			addr,
			p.Connection,
			p.Country,
			formatBytes(p.Downloaded),
			formatBytes(p.Uploaded),
			formatPercent(p.Progress),
			formatRate(p.DlSpeed),
			formatRate(p.UpSpeed),
			p.Client,
		})
	}
	return m.sublistTable(
		[]string{"IP", "Link", "Country", "Bytes DL", "Bytes UL", "Progress", "DL Speed", "UL Speed", "Client"},
		flexWidths(width, 6, 10, 10, 10, 8, 12, 12, 14),
		rows, height, nil,
	)
}

func priorityLabel(priority int) string {
	switch {
	case priority == 0:
		return "Skip"
	case priority >= 7:
		return "Maximum"
	case priority >= 6:
		return "High"
	default:
		return "Normal"
	}
}
