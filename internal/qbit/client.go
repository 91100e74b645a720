package qbit

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	qbt "github.com/autobrr/go-qbittorrent"

	"github.com/five82/qbtui/internal/config"
)

// API is the subset of the qBittorrent WebUI the session needs.
// It is implemented by *Client and can be faked in tests.
type API interface {
	Torrents(ctx context.Context) ([]qbt.Torrent, error)
	Files(ctx context.Context, hash string) (qbt.TorrentFiles, error)
	Trackers(ctx context.Context, hash string) ([]qbt.TorrentTracker, error)
	Peers(ctx context.Context, hash string) (map[string]qbt.TorrentPeer, error)
	AddMagnet(ctx context.Context, link string) error
	AddFile(ctx context.Context, name string, data []byte) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

const (
	// TorrentLimit caps the torrent list request.
	TorrentLimit = 10

	clientTimeoutSeconds = 30
)

// Client talks to a qBittorrent WebUI through go-qbittorrent.
type Client struct {
	qbt *qbt.Client

	mu       sync.Mutex
	loggedIn bool
}

// NewClient builds a Client for rec. No request is made until first use.
func NewClient(rec config.Record) (*Client, error) {
	host, err := normalizeHost(rec.APIURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		qbt: qbt.NewClient(qbt.Config{
			Host:     host,
			Username: rec.Username,
			Password: rec.Password,
			Timeout:  clientTimeoutSeconds,
		}),
	}, nil
}

// Torrents lists all torrents, capped at TorrentLimit.
func (c *Client) Torrents(ctx context.Context) ([]qbt.Torrent, error) {
	if err := c.login(ctx); err != nil {
		return nil, err
	}
	torrents, err := c.qbt.GetTorrentsCtx(ctx, qbt.TorrentFilterOptions{
		Filter: qbt.TorrentFilterAll,
		Limit:  TorrentLimit,
	})
	if err != nil {
		c.invalidate()
		return nil, fmt.Errorf("list torrents: %w", err)
	}
	return torrents, nil
}

// Files returns the content listing of the torrent with hash.
func (c *Client) Files(ctx context.Context, hash string) (qbt.TorrentFiles, error) {
	if err := c.login(ctx); err != nil {
		return nil, err
	}
	files, err := c.qbt.GetFilesInformationCtx(ctx, hash)
	if err != nil {
		c.invalidate()
		return nil, fmt.Errorf("get files for %s: %w", hash, err)
	}
	if files == nil {
		return nil, nil
	}
	return *files, nil
}

// Trackers returns the trackers of the torrent with hash.
func (c *Client) Trackers(ctx context.Context, hash string) ([]qbt.TorrentTracker, error) {
	if err := c.login(ctx); err != nil {
		return nil, err
	}
	trackers, err := c.qbt.GetTorrentTrackersCtx(ctx, hash)
	if err != nil {
		c.invalidate()
		return nil, fmt.Errorf("get trackers for %s: %w", hash, err)
	}
	return trackers, nil
}

// Peers returns the connected peers of the torrent with hash, keyed by
// "ip:port". It always requests a full update (rid 0).
func (c *Client) Peers(ctx context.Context, hash string) (map[string]qbt.TorrentPeer, error) {
	if err := c.login(ctx); err != nil {
		return nil, err
	}
	resp, err := c.qbt.GetTorrentPeersCtx(ctx, hash, 0)
	if err != nil {
		c.invalidate()
		return nil, fmt.Errorf("get peers for %s: %w", hash, err)
	}
	if resp == nil {
		return nil, nil
	}
	return resp.Peers, nil
}

// AddMagnet adds a torrent from a magnet link or torrent URL.
func (c *Client) AddMagnet(ctx context.Context, link string) error {
	if err := c.login(ctx); err != nil {
		return err
	}
	if err := c.qbt.AddTorrentFromUrlCtx(ctx, link, map[string]string{}); err != nil {
		c.invalidate()
		return fmt.Errorf("add torrent from link: %w", err)
	}
	return nil
}

// AddFile uploads the raw bytes of a .torrent file.
func (c *Client) AddFile(ctx context.Context, name string, data []byte) error {
	if err := c.login(ctx); err != nil {
		return err
	}
	if err := c.qbt.AddTorrentFromMemoryCtx(ctx, data, map[string]string{}); err != nil {
		c.invalidate()
		return fmt.Errorf("add torrent file %s: %w", name, err)
	}
	return nil
}

// login authenticates once per client, and again after any failed request.
func (c *Client) login(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loggedIn {
		return nil
	}
	if err := c.qbt.LoginCtx(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.loggedIn = true
	return nil
}

func normalizeHost(apiURL string) (string, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return "", fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("api url %q has no host", apiURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.loggedIn = false
	c.mu.Unlock()
}
