package session

import (
	"unicode/utf8"

	"github.com/five82/qbtui/internal/config"
)

// Field identifies an editable text field.
type Field int

const (
	FieldURL Field = iota
	FieldUsername
	FieldPassword
	FieldMagnet
	FieldFilePath
)

var configFields = []Field{FieldURL, FieldUsername, FieldPassword}

func (f Field) String() string {
	switch f {
	case FieldURL:
		return "API URL"
	case FieldUsername:
		return "Username"
	case FieldPassword:
		return "Password"
	case FieldMagnet:
		return "Magnet Link"
	case FieldFilePath:
		return "File Path"
	default:
		return "Unknown"
	}
}

// Scratch holds the editable copies behind every popup.
type Scratch struct {
	Config   config.Record
	Magnet   string
	FilePath string
}

// Text returns the current value of f.
func (s *Scratch) Text(f Field) string {
	if p := s.field(f); p != nil {
		return *p
	}
	return ""
}

func (s *Scratch) field(f Field) *string {
	switch f {
	case FieldURL:
		return &s.Config.APIURL
	case FieldUsername:
		return &s.Config.Username
	case FieldPassword:
		return &s.Config.Password
	case FieldMagnet:
		return &s.Magnet
	case FieldFilePath:
		return &s.FilePath
	default:
		return nil
	}
}

// Editor is a cursor over one Scratch field. The cursor counts runes.
type Editor struct {
	field  Field
	cursor int
}

// Field returns the focused field.
func (e *Editor) Field() Field {
	return e.field
}

// Cursor returns the cursor position in runes.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Focus switches to f and puts the cursor at its end.
func (e *Editor) Focus(s *Scratch, f Field) {
	e.field = f
	e.ResetToEnd(s)
}

// ResetToEnd moves the cursor past the last rune.
func (e *Editor) ResetToEnd(s *Scratch) {
	e.cursor = utf8.RuneCountInString(s.Text(e.field))
}

// Insert adds r at the cursor and advances it.
func (e *Editor) Insert(s *Scratch, r rune) {
	p := s.field(e.field)
	if p == nil {
		return
	}
	runes := []rune(*p)
	at := clampInt(e.cursor, 0, len(runes))
	runes = append(runes[:at], append([]rune{r}, runes[at:]...)...)
	*p = string(runes)
	e.cursor = at + 1
}

// DeleteBeforeCursor removes the rune before the cursor. No-op at 0.
func (e *Editor) DeleteBeforeCursor(s *Scratch) {
	p := s.field(e.field)
	if p == nil {
		return
	}
	runes := []rune(*p)
	at := clampInt(e.cursor, 0, len(runes))
	if at == 0 {
		e.cursor = 0
		return
	}
	runes = append(runes[:at-1], runes[at:]...)
	*p = string(runes)
	e.cursor = at - 1
}

// Move shifts the cursor by delta, staying within the field.
func (e *Editor) Move(s *Scratch, delta int) {
	e.cursor = clampInt(e.cursor+delta, 0, utf8.RuneCountInString(s.Text(e.field)))
}

// NextConfigField focuses the following config field, wrapping.
func (e *Editor) NextConfigField(s *Scratch) {
	e.Focus(s, configFields[(configIndex(e.field)+1)%len(configFields)])
}

// PreviousConfigField focuses the preceding config field, wrapping.
func (e *Editor) PreviousConfigField(s *Scratch) {
	n := len(configFields)
	e.Focus(s, configFields[(configIndex(e.field)-1+n)%n])
}

func configIndex(f Field) int {
	for i, cf := range configFields {
		if cf == f {
			return i
		}
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
