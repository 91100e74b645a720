package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/qbtui/internal/config"
	"github.com/five82/qbtui/internal/logtail"
)

func TestOpenLogger_WritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), config.AppName)

	logger, closeLog, err := openLogger(dir)
	if err != nil {
		t.Fatalf("openLogger returned error: %v", err)
	}
	logger.Debug().Str("message", "refresh_torrents").Msg("dispatch")
	logger.Warn().Str("message_kind", "refresh_torrents").Msg("request failed")
	closeLog()

	path := filepath.Join(dir, logFileName)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("log mode = %v, want 0600", info.Mode().Perm())
	}

	entries, err := logtail.Read(path, 10)
	if err != nil {
		t.Fatalf("logtail.Read: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Level != "warn" || entries[0].Message != "request failed" {
		t.Fatalf("entry = %#v, want warn/request failed", entries[0])
	}
	if entries[0].Time.IsZero() {
		t.Fatalf("entry has no timestamp")
	}
}

func TestNewClient_RejectsBlankURL(t *testing.T) {
	if _, err := newClient(config.Record{}); err == nil {
		t.Fatalf("expected error for blank api url")
	} else if !strings.Contains(err.Error(), "empty") {
		t.Fatalf("error = %v, want mention of empty url", err)
	}
}
