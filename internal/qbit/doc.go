// Package qbit adapts the qBittorrent WebUI API for qbtui.
//
// # Overview
//
// The session core depends only on the API interface defined here. The
// production implementation, Client, is a thin wrapper around
// github.com/autobrr/go-qbittorrent built from a config.Record. Every method
// takes a context so the caller can bound each request.
//
// # Endpoints
//
//   - Torrents: /api/v2/torrents/info (filter=all, limit=TorrentLimit)
//   - Files:    /api/v2/torrents/files
//   - Trackers: /api/v2/torrents/trackers
//   - Peers:    /api/v2/sync/torrentPeers (rid=0, always a full update)
//   - AddMagnet, AddFile: /api/v2/torrents/add
//
// The client logs in lazily on first use.
//
// # Validation
//
// ValidateMagnet and ReadTorrentFile reject bad input before any request is
// made. Both use github.com/anacrolix/torrent/metainfo to parse magnet URIs
// and bencoded metainfo. Their sentinel errors (ErrEmptyMagnet,
// ErrInvalidMagnet, ErrEmptyPath, ErrInvalidTorrentFile) are matched with
// errors.Is.
//
// # Labels
//
// StateLabel and TrackerStatusLabel turn API enums into the short labels the
// UI renders.
package qbit
