package ui

import "testing"

func TestScrollOffset(t *testing.T) {
	cases := []struct {
		name                  string
		cursor, length, width int
		want                  int
	}{
		{"fits", 3, 5, 10, 0},
		{"cursor at end of long text", 20, 20, 10, 11},
		{"cursor in middle of long text", 5, 20, 10, 0},
		{"cursor past visible window", 15, 20, 10, 6},
		{"zero width", 5, 10, 0, 0},
		{"cursor beyond length", 30, 20, 10, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scrollOffset(tc.cursor, tc.length, tc.width)
			if got != tc.want {
				t.Fatalf("scrollOffset(%d, %d, %d) = %d, want %d", tc.cursor, tc.length, tc.width, got, tc.want)
			}
			if tc.width > 0 {
				c := minInt(tc.cursor, tc.length)
				if c < got || c >= got+tc.width {
					t.Fatalf("cursor %d not visible in [%d, %d)", c, got, got+tc.width)
				}
			}
		})
	}
}

func TestWindowStart(t *testing.T) {
	cases := []struct {
		selected, total, visible, want int
	}{
		{0, 5, 10, 0},
		{0, 20, 5, 0},
		{10, 20, 5, 8},
		{19, 20, 5, 15},
	}
	for _, tc := range cases {
		if got := windowStart(tc.selected, tc.total, tc.visible); got != tc.want {
			t.Fatalf("windowStart(%d, %d, %d) = %d, want %d", tc.selected, tc.total, tc.visible, got, tc.want)
		}
	}
}

func TestScrollbar(t *testing.T) {
	bar := scrollbar(4, 4, 0, 0)
	for i, g := range bar {
		if g != " " {
			t.Fatalf("bar[%d] = %q, want blank when content fits", i, g)
		}
	}

	bar = scrollbar(4, 16, 15, 12)
	if bar[3] != "┃" {
		t.Fatalf("thumb should sit at bottom at end of list: %v", bar)
	}
	if bar[0] != "│" {
		t.Fatalf("track expected at top: %v", bar)
	}
}
