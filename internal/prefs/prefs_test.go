package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p, err := Load(Path(t.TempDir()))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_EmptyPathIsError(t *testing.T) {
	p, err := Load("  ")
	if err == nil {
		t.Fatalf("Load returned nil error, want error")
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	path := Path(filepath.Join(t.TempDir(), "subdir"))

	if err := Save(path, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Slate")
	}
}

func TestLoad_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty theme", "theme = \"\"\n"},
		{"invalid toml", "not valid toml {{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := Path(t.TempDir())
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			p, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
		})
	}
}
