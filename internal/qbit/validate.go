package qbit

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
)

// Input validation errors. None of them is sent to the remote API.
var (
	ErrEmptyMagnet        = errors.New("magnet link is empty")
	ErrInvalidMagnet      = errors.New("invalid magnet link")
	ErrEmptyPath          = errors.New("torrent file path is empty")
	ErrInvalidTorrentFile = errors.New("invalid torrent file")
)

// TorrentFile is a validated .torrent file ready for upload.
type TorrentFile struct {
	Path string
	Name string
	Data []byte
}

// ValidateMagnet checks a magnet link, or an http(s) URL pointing at a
// .torrent file, and returns it trimmed.
func ValidateMagnet(link string) (string, error) {
	trimmed := strings.TrimSpace(link)
	if trimmed == "" {
		return "", ErrEmptyMagnet
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "magnet:"):
		if _, err := metainfo.ParseMagnetUri(trimmed); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidMagnet, err)
		}
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(trimmed)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("%w: malformed url", ErrInvalidMagnet)
		}
	default:
		return "", fmt.Errorf("%w: expected magnet: or http(s) link", ErrInvalidMagnet)
	}
	return trimmed, nil
}

// ReadTorrentFile reads and parses the .torrent file at path.
func ReadTorrentFile(path string) (TorrentFile, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return TorrentFile{}, ErrEmptyPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return TorrentFile{}, fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}

	data, err := os.ReadFile(trimmed)
	if err != nil {
		return TorrentFile{}, fmt.Errorf("%w: %v", ErrInvalidTorrentFile, err)
	}

	mi, err := metainfo.Load(bytes.NewReader(data))
	if err != nil {
		return TorrentFile{}, fmt.Errorf("%w: %v", ErrInvalidTorrentFile, err)
	}
	info, err := mi.UnmarshalInfo()
	if err != nil {
		return TorrentFile{}, fmt.Errorf("%w: %v", ErrInvalidTorrentFile, err)
	}

	name := info.Name
	if name == "" {
		name = filepath.Base(trimmed)
	}
	return TorrentFile{Path: trimmed, Name: name, Data: data}, nil
}
