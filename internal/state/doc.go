// Package state holds the remote data cache for qbtui.
//
// # Overview
//
// Cache keeps the most recent copy of every collection fetched from the
// qBittorrent WebUI: the torrent list and, for a single torrent, its files,
// trackers and peers. Every setter replaces its collection wholesale. The
// session state owns exactly one Cache and only the event loop touches it,
// so there is no locking.
//
// # Detail Sets
//
// Detail sets are keyed by DetailHash. Storing a set for a different hash
// drops the sets of the previous torrent, so at most one torrent's details
// are live. ClearDetails empties them when nothing is selected.
//
// Peers arrive as a map keyed by "ip:port". PeerAddrs gives a stable sorted
// order so a row index can address a peer.
//
// # Failures
//
// Fail keeps all data and records:
//
//   - LastError: the most recent error
//   - LastUpdated: when it happened
//   - ConsecutiveFailures: reset by any successful set
//
// IsOffline reports two or more failures in a row; the footer uses it to
// flag an unreachable WebUI.
package state
