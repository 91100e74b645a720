package ui

import "time"

// Timing constants.
const (
	// RedrawInterval paces redraw ticks. Ticks never fetch.
	RedrawInterval = 100 * time.Millisecond
)

// Popup and overlay sizes.
const (
	// PopupWidthPercent is the width of the info and config popups relative
	// to the terminal.
	PopupWidthPercent = 80

	// AddPopupWidthPercent is the width of the add-torrent popup.
	AddPopupWidthPercent = 60

	// LogOverlayLines is how many log entries the log overlay shows.
	LogOverlayLines = 200

	// LayoutCompactWidth is the threshold below which optional table
	// columns are hidden.
	LayoutCompactWidth = 110
)

// timestampLayout is used for every absolute time shown.
const timestampLayout = "2006-01-02 15:04:05"
