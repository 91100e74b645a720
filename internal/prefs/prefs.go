// Package prefs persists qbtui presentation preferences next to the
// connection config. Preferences never affect the session state machine.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for the UI.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	prefsFileName = "prefs.toml"
	defaultTheme  = "Nightfox"
)

// Path returns the preferences file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, prefsFileName)
}

// Load reads preferences from path. Anything unreadable degrades to defaults;
// only an empty path is reported as an error.
func Load(path string) (Prefs, error) {
	prefs := Prefs{Theme: defaultTheme}
	if strings.TrimSpace(path) == "" {
		return prefs, fmt.Errorf("prefs path is empty")
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}
	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	return prefs, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("prefs path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
