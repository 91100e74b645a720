package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/five82/qbtui/internal/qbit"
)

// number covers the numeric field types the WebUI API decodes into.
type number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// formatBytes renders a byte count in IEC units (KiB, MiB, ...).
func formatBytes[T number](n T) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}

// formatRate renders a transfer rate in bytes per second.
func formatRate[T number](n T) string {
	return formatBytes(n) + "/s"
}

// formatPercent renders a 0..1 fraction as a percentage.
func formatPercent[T number](fraction T) string {
	return fmt.Sprintf("%.1f%%", float64(fraction)*100)
}

// formatRatio renders a share ratio.
func formatRatio(ratio float64) string {
	if ratio < 0 {
		return "∞"
	}
	return fmt.Sprintf("%.2f", ratio)
}

// formatETA renders an ETA in seconds. qBittorrent reports InfiniteETA for
// torrents that will not finish.
func formatETA(seconds int64) string {
	if seconds < 0 || seconds >= qbit.InfiniteETA {
		return "∞"
	}
	return humanizeDuration(time.Duration(seconds) * time.Second)
}

// formatTimestamp renders a unix timestamp, or N/A when unset.
func formatTimestamp(unix int64) string {
	if unix <= 0 {
		return "N/A"
	}
	return time.Unix(unix, 0).Format(timestampLayout)
}

// humanizeDuration renders the two most significant units of d.
func humanizeDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	secs := int64(d / time.Second)
	days := secs / 86400
	hours := (secs % 86400) / 3600
	mins := (secs % 3600) / 60
	rem := secs % 60

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case mins > 0 && rem > 0:
		return fmt.Sprintf("%dm %ds", mins, rem)
	case mins > 0:
		return fmt.Sprintf("%dm", mins)
	default:
		return fmt.Sprintf("%ds", rem)
	}
}
