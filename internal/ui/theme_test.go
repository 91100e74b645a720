package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope) = %q, want Nightfox", got)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate) = %q, want Slate", got)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("len(ThemeNames()) = %d, want 3", len(names))
	}
	for i, name := range names {
		want := names[(i+1)%len(names)]
		if got := NextTheme(name); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, got, want)
		}
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
}

func TestThemes_CoverEveryStateLabel(t *testing.T) {
	labels := []string{"downloading", "seeding", "completed", "paused", "stalled", "queued",
		"checking", "allocating", "moving", "missing files", "error", "unknown"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, label := range labels {
			if th.StatusColors[label] == "" {
				t.Fatalf("theme %s has no color for %q", name, label)
			}
		}
	}
}

func TestStatusStyle_UsesLabelColor(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()
	got := styles.StatusStyle("Seeding").GetBackground()
	if got != lipgloss.Color(th.StatusColors["seeding"]) {
		t.Fatalf("StatusStyle(Seeding) background = %v, want %v", got, th.StatusColors["seeding"])
	}
	got = styles.StatusStyle("Bogus").GetBackground()
	if got != lipgloss.Color(th.Muted) {
		t.Fatalf("StatusStyle(Bogus) background = %v, want muted %v", got, th.Muted)
	}
}

func TestTrackerColor(t *testing.T) {
	th := GetTheme("Kanagawa")
	cases := map[string]string{
		"Working":       th.Success,
		"Not working":   th.Danger,
		"Not contacted": th.Warning,
		"Disabled":      th.Muted,
	}
	for label, want := range cases {
		if got := th.TrackerColor(label); got != want {
			t.Fatalf("TrackerColor(%q) = %q, want %q", label, got, want)
		}
	}
}
