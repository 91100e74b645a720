package qbit

import (
	qbt "github.com/autobrr/go-qbittorrent"
)

// InfiniteETA is the eta qBittorrent reports when a torrent will never finish
// or is already complete.
const InfiniteETA = 8640000

// StateLabel maps a torrent state to the short label shown in tables.
func StateLabel(state qbt.TorrentState) string {
	switch state {
	case qbt.TorrentStateError:
		return "Error"
	case qbt.TorrentStateMissingFiles:
		return "Missing Files"
	case qbt.TorrentStateUploading, qbt.TorrentStateStalledUp, qbt.TorrentStateForcedUp:
		return "Seeding"
	case qbt.TorrentStateCheckingUp, qbt.TorrentStateCheckingDl, qbt.TorrentStateCheckingResumeData:
		return "Checking"
	case qbt.TorrentStatePausedUp, qbt.TorrentStateStoppedUp:
		return "Completed"
	case qbt.TorrentStateQueuedUp, qbt.TorrentStateQueuedDl:
		return "Queued"
	case qbt.TorrentStateAllocating:
		return "Allocating"
	case qbt.TorrentStateDownloading, qbt.TorrentStateMetaDl, qbt.TorrentStateForcedDl:
		return "Downloading"
	case qbt.TorrentStatePausedDl, qbt.TorrentStateStoppedDl:
		return "Paused"
	case qbt.TorrentStateStalledDl:
		return "Stalled"
	case qbt.TorrentStateMoving:
		return "Moving"
	default:
		return "Unknown"
	}
}

// TrackerStatusLabel maps a tracker status code to a label.
func TrackerStatusLabel(status qbt.TrackerStatus) string {
	switch status {
	case qbt.TrackerStatusDisabled:
		return "Disabled"
	case qbt.TrackerStatusNotContacted:
		return "Not contacted"
	case qbt.TrackerStatusOK:
		return "Working"
	case qbt.TrackerStatusUpdating:
		return "Updating"
	case qbt.TrackerStatusNotWorking:
		return "Not working"
	default:
		return "Unknown"
	}
}

// Peer is the subset of peer attributes qbtui shows.
type Peer struct {
	IP         string
	Port       int
	Connection string
	Country    string
	Downloaded int64
	Uploaded   int64
	Progress   float64
	DlSpeed    int64
	UpSpeed    int64
	Client     string
}

// PeerInfo converts a peer to the units the peers table renders.
func PeerInfo(p qbt.TorrentPeer) Peer {
	return Peer{
		IP:         p.IP,
		Port:       int(p.Port),
		Connection: p.Connection,
		Country:    p.Country,
		Downloaded: int64(p.Downloaded),
		Uploaded:   int64(p.Uploaded),
		Progress:   float64(p.Progress),
		DlSpeed:    int64(p.DownSpeed),
		UpSpeed:    int64(p.UpSpeed),
		Client:     p.Client,
	}
}
