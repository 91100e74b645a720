package session

import (
	"testing"

	"github.com/five82/qbtui/internal/config"
)

func TestEditor_InsertDeleteRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		cursor int
	}{
		{"start", "hello", 0},
		{"middle", "hello", 2},
		{"end", "hello", 5},
		{"unicode", "héllo✓", 4},
		{"empty", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Scratch{Magnet: tc.text}
			var e Editor
			e.Focus(s, FieldMagnet)
			e.Move(s, tc.cursor-e.Cursor())
			if e.Cursor() != tc.cursor {
				t.Fatalf("Cursor() = %d, want %d", e.Cursor(), tc.cursor)
			}

			e.Insert(s, 'x')
			if e.Cursor() != tc.cursor+1 {
				t.Fatalf("Cursor() after insert = %d, want %d", e.Cursor(), tc.cursor+1)
			}
			e.DeleteBeforeCursor(s)
			if s.Magnet != tc.text {
				t.Fatalf("Magnet = %q, want %q", s.Magnet, tc.text)
			}
			if e.Cursor() != tc.cursor {
				t.Fatalf("Cursor() after delete = %d, want %d", e.Cursor(), tc.cursor)
			}
		})
	}
}

func TestEditor_DeleteAtStartIsNoOp(t *testing.T) {
	s := &Scratch{FilePath: "abc"}
	var e Editor
	e.Focus(s, FieldFilePath)
	e.Move(s, -10)
	if e.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", e.Cursor())
	}

	e.DeleteBeforeCursor(s)
	if s.FilePath != "abc" || e.Cursor() != 0 {
		t.Fatalf("after delete: FilePath = %q cursor = %d, want \"abc\" 0", s.FilePath, e.Cursor())
	}
}

func TestEditor_MoveClamps(t *testing.T) {
	s := &Scratch{Magnet: "ab"}
	var e Editor
	e.Focus(s, FieldMagnet)
	e.Move(s, 5)
	if e.Cursor() != 2 {
		t.Fatalf("Cursor() = %d, want 2", e.Cursor())
	}
	e.Move(s, -5)
	if e.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", e.Cursor())
	}
}

func TestEditor_ConfigFieldsCycleAndSnapToEnd(t *testing.T) {
	s := &Scratch{Config: config.Record{APIURL: "http://x:8080", Username: "admin", Password: "pw"}}
	var e Editor
	e.Focus(s, FieldURL)
	if e.Cursor() != len("http://x:8080") {
		t.Fatalf("Cursor() = %d, want end of url", e.Cursor())
	}

	e.NextConfigField(s)
	if e.Field() != FieldUsername || e.Cursor() != len("admin") {
		t.Fatalf("after next: field %s cursor %d, want username 5", e.Field(), e.Cursor())
	}

	e.NextConfigField(s)
	e.NextConfigField(s)
	if e.Field() != FieldURL {
		t.Fatalf("Field() = %s, want url after wrap", e.Field())
	}

	e.PreviousConfigField(s)
	if e.Field() != FieldPassword || e.Cursor() != 2 {
		t.Fatalf("after previous: field %s cursor %d, want password 2", e.Field(), e.Cursor())
	}
}

func TestEditor_InsertEditsFocusedConfigField(t *testing.T) {
	s := &Scratch{Config: config.Default()}
	var e Editor
	e.Focus(s, FieldPassword)
	for _, r := range "s3cret" {
		e.Insert(s, r)
	}
	if s.Config.Password != "s3cret" {
		t.Fatalf("Password = %q, want s3cret", s.Config.Password)
	}
	if s.Config.Username != "admin" {
		t.Fatalf("Username = %q, want admin", s.Config.Username)
	}
}
