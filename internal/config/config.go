package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// AppName keys every file qbtui persists.
const AppName = "qbtui"

const (
	defaultAPIURL   = "http://localhost:8080"
	defaultUsername = "admin"
	configFileName  = "config.toml"
)

// Record holds the connection settings for the qBittorrent WebUI.
type Record struct {
	APIURL   string `toml:"api_url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Default returns the record used when nothing has been persisted yet.
func Default() Record {
	return Record{APIURL: defaultAPIURL, Username: defaultUsername}
}

// Configured reports whether the record has ever been saved by the user.
// An empty password is the first-run sentinel.
func (r Record) Configured() bool {
	return r.Password != ""
}

// Store persists records as TOML files under <dir>/<app>/config.toml.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. An empty dir uses os.UserConfigDir.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = base
	}
	resolved, err := expandPath(dir)
	if err != nil {
		return nil, err
	}
	return &Store{dir: resolved}, nil
}

// Dir returns the directory holding files for app.
func (s *Store) Dir(app string) string {
	return filepath.Join(s.dir, app)
}

// Path returns the config file path for app.
func (s *Store) Path(app string) string {
	return filepath.Join(s.Dir(app), configFileName)
}

// Load reads the record for app. A missing file is created with defaults.
func (s *Store) Load(app string) (Record, error) {
	path := s.Path(app)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			rec := Default()
			if err := s.Save(app, rec); err != nil {
				return Record{}, fmt.Errorf("create default config: %w", err)
			}
			return rec, nil
		}
		return Record{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Record{}, fmt.Errorf("read config: %w", err)
	}

	rec := Default()
	if err := toml.Unmarshal(bytes, &rec); err != nil {
		return Record{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	rec.APIURL = strings.TrimSpace(rec.APIURL)
	if rec.APIURL == "" {
		rec.APIURL = defaultAPIURL
	}
	return rec, nil
}

// Save writes rec for app, creating directories as needed.
func (s *Store) Save(app string, rec Record) error {
	if err := os.MkdirAll(s.Dir(app), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	bytes, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// The file holds the WebUI password.
	if err := os.WriteFile(s.Path(app), bytes, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
