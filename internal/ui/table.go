package ui

import (
	"strings"

	qbt "github.com/autobrr/go-qbittorrent"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/qbtui/internal/qbit"
	"github.com/five82/qbtui/internal/session"
)

type column struct {
	title   string
	width   int
	right   bool
	compact bool // shown on narrow terminals
	value   func(t qbt.Torrent) string
}

func torrentColumns() []column {
	return []column{
		{title: "Size", width: 11, right: true, compact: true, value: func(t qbt.Torrent) string { return formatBytes(t.Size) }},
		{title: "Bytes DL", width: 11, right: true, value: func(t qbt.Torrent) string { return formatBytes(t.Downloaded) }},
		{title: "Progress", width: 9, right: true, compact: true, value: func(t qbt.Torrent) string { return formatPercent(t.Progress) }},
		{title: "State", width: 14, compact: true, value: func(t qbt.Torrent) string { return qbit.StateLabel(t.State) }},
		{title: "DL Speed", width: 13, right: true, compact: true, value: func(t qbt.Torrent) string { return formatRate(t.DlSpeed) }},
		{title: "UL Speed", width: 13, right: true, value: func(t qbt.Torrent) string { return formatRate(t.UpSpeed) }},
		{title: "ETA", width: 9, right: true, compact: true, value: func(t qbt.Torrent) string { return formatETA(t.ETA) }},
		{title: "Ratio", width: 7, right: true, value: func(t qbt.Torrent) string { return formatRatio(t.Ratio) }},
	}
}

func (m Model) visibleColumns() []column {
	cols := torrentColumns()
	if m.width >= LayoutCompactWidth {
		return cols
	}
	out := cols[:0]
	for _, c := range cols {
		if c.compact {
			out = append(out, c)
		}
	}
	return out
}

// renderTable renders the torrent table into height lines. Each torrent
// takes session.TableRowHeight lines: values, then a progress bar.
func (m Model) renderTable(height int) string {
	styles := m.theme.Styles()
	cols := m.visibleColumns()
	torrents := m.st.Cache.Torrents

	// One column is reserved for the scrollbar.
	nameWidth := m.width - 1 - 2
	for _, c := range cols {
		nameWidth -= c.width + 1
	}
	nameWidth = maxInt(8, nameWidth)

	lines := make([]string, 0, height)
	lines = append(lines, m.tableHeader(cols, nameWidth))

	if len(torrents) == 0 {
		msg := "No torrents"
		if m.st.Cache.LastUpdated.IsZero() {
			msg = "Waiting for qBittorrent…"
		}
		lines = append(lines, styles.MutedText.Render(" "+msg))
		return fillLines(lines, height)
	}

	bodyHeight := maxInt(session.TableRowHeight, height-1)
	visible := maxInt(1, bodyHeight/session.TableRowHeight)
	selected, hasSel := m.st.Table.Selected()
	start := windowStart(selected, len(torrents), visible)
	end := minInt(len(torrents), start+visible)

	var body []string
	for i := start; i < end; i++ {
		t := torrents[i]
		bg := m.theme.Surface
		if i%2 == 1 {
			bg = m.theme.SurfaceAlt
		}
		rowStyle := lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(m.theme.Text))
		if hasSel && i == selected {
			rowStyle = styles.Selected
		}

		var cells []string
		cells = append(cells, padRight(truncate(t.Name, nameWidth), nameWidth))
		for _, c := range cols {
			v := truncate(c.value(t), c.width)
			if c.right {
				cells = append(cells, padLeft(v, c.width))
			} else {
				cells = append(cells, padRight(v, c.width))
			}
		}
		width := m.width - 1
		body = append(body, rowStyle.Width(width).Render(" "+strings.Join(cells, " ")))

		bar := m.progress
		bar.Width = nameWidth
		body = append(body, rowStyle.Width(width).Render(" "+bar.ViewAs(t.Progress)))
	}

	bar := scrollbar(len(body), len(torrents)*session.TableRowHeight, m.st.Table.Position(), start*session.TableRowHeight)
	for i := range body {
		body[i] += styles.FaintText.Render(bar[i])
	}
	lines = append(lines, body...)
	return fillLines(lines, height)
}

func (m Model) tableHeader(cols []column, nameWidth int) string {
	styles := m.theme.Styles()
	cells := []string{padRight("Name", nameWidth)}
	for _, c := range cols {
		if c.right {
			cells = append(cells, padLeft(c.title, c.width))
		} else {
			cells = append(cells, padRight(c.title, c.width))
		}
	}
	return styles.AccentText.Bold(true).Render(" " + strings.Join(cells, " "))
}

// windowStart returns the first row to draw so that selected stays within a
// window of visible rows.
func windowStart(selected, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	start := selected - visible/2
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}

// scrollbar returns one glyph per drawn line. total and position are in
// content lines; offset is the first content line drawn.
func scrollbar(height, total, position, offset int) []string {
	out := make([]string, height)
	if height <= 0 {
		return out
	}
	if total <= height {
		for i := range out {
			out[i] = " "
		}
		return out
	}
	thumb := maxInt(1, height*height/total)
	top := offset * height / total
	if position >= total-1 {
		top = height - thumb
	}
	for i := range out {
		if i >= top && i < top+thumb {
			out[i] = "┃"
		} else {
			out[i] = "│"
		}
	}
	return out
}

func fillLines(lines []string, height int) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
