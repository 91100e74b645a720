package state

import (
	"sort"
	"time"

	qbt "github.com/autobrr/go-qbittorrent"
)

// Cache holds the latest remote snapshots shown by the UI.
type Cache struct {
	Torrents []qbt.Torrent

	// DetailHash is the torrent the detail sets below belong to.
	DetailHash string
	Files      qbt.TorrentFiles
	Trackers   []qbt.TorrentTracker
	Peers      map[string]qbt.TorrentPeer

	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has failed several requests in a row.
func (c *Cache) IsOffline() bool {
	return c.ConsecutiveFailures >= 2
}

// SetTorrents replaces the torrent snapshot.
func (c *Cache) SetTorrents(torrents []qbt.Torrent) {
	c.Torrents = cloneSlice(torrents)
	c.succeed()
}

// SetFiles replaces the file set for hash.
func (c *Cache) SetFiles(hash string, files qbt.TorrentFiles) {
	c.switchDetail(hash)
	c.Files = cloneSlice(files)
	c.succeed()
}

// SetTrackers replaces the tracker set for hash.
func (c *Cache) SetTrackers(hash string, trackers []qbt.TorrentTracker) {
	c.switchDetail(hash)
	c.Trackers = cloneSlice(trackers)
	c.succeed()
}

// SetPeers replaces the peer set for hash.
func (c *Cache) SetPeers(hash string, peers map[string]qbt.TorrentPeer) {
	c.switchDetail(hash)
	if len(peers) == 0 {
		c.Peers = nil
	} else {
		c.Peers = make(map[string]qbt.TorrentPeer, len(peers))
		for addr, peer := range peers {
			c.Peers[addr] = peer
		}
	}
	c.succeed()
}

// Fail records err while keeping every snapshot.
func (c *Cache) Fail(err error) {
	if err == nil {
		return
	}
	c.LastError = err
	c.LastUpdated = time.Now()
	c.ConsecutiveFailures++
}

// ClearDetails empties every detail set.
func (c *Cache) ClearDetails() {
	c.DetailHash = ""
	c.Files = nil
	c.Trackers = nil
	c.Peers = nil
}

// PeerAddrs returns the peer keys in sorted order.
func (c *Cache) PeerAddrs() []string {
	if len(c.Peers) == 0 {
		return nil
	}
	addrs := make([]string, 0, len(c.Peers))
	for addr := range c.Peers {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

// Torrent returns the torrent at index i.
func (c *Cache) Torrent(i int) (qbt.Torrent, bool) {
	if i < 0 || i >= len(c.Torrents) {
		return qbt.Torrent{}, false
	}
	return c.Torrents[i], true
}

// switchDetail drops sets that belong to another torrent.
func (c *Cache) switchDetail(hash string) {
	if c.DetailHash == hash {
		return
	}
	c.ClearDetails()
	c.DetailHash = hash
}

func (c *Cache) succeed() {
	c.LastError = nil
	c.LastUpdated = time.Now()
	c.ConsecutiveFailures = 0
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
