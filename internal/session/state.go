package session

import (
	"time"

	qbt "github.com/autobrr/go-qbittorrent"

	"github.com/five82/qbtui/internal/config"
	"github.com/five82/qbtui/internal/state"
)

const (
	// TableRowHeight is the height of a main table row, in lines.
	TableRowHeight = 2

	// NoticeTTL is how long a notice stays on screen.
	NoticeTTL = 5 * time.Second
)

// NoticeLevel grades a notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient status line message.
type Notice struct {
	Text  string
	Level NoticeLevel
	At    time.Time
}

// State is the single mutable aggregate owned by the event loop.
type State struct {
	Running bool
	Mode    Mode

	InfoOpen bool
	InfoTab  InfoTab
	AddTab   AddTab

	Table   Tracker
	Sublist Tracker

	Scratch Scratch
	Editor  Editor

	// Config is the committed record. Only SaveConfig changes it.
	Config config.Record

	Cache  state.Cache
	Notice Notice

	now func() time.Time
}

// New builds the startup state. A record that was never configured opens the
// config editor immediately.
func New(cfg config.Record) *State {
	st := &State{
		Running: true,
		Mode:    ModeNormal,
		Table:   NewTracker(TableRowHeight),
		Sublist: NewTracker(1),
		Config:  cfg,
		Scratch: Scratch{Config: cfg},
		now:     time.Now,
	}
	if !cfg.Configured() {
		st.Mode = ModeConfigEditor
		st.Editor.Focus(&st.Scratch, FieldURL)
	}
	return st
}

// ConfigEditorOpen reports whether the config popup is visible.
func (s *State) ConfigEditorOpen() bool {
	return s.Mode == ModeConfigEditor
}

// AddTorrentOpen reports whether the add-torrent popup is visible.
func (s *State) AddTorrentOpen() bool {
	return s.Mode == ModeAddTorrent
}

// SelectedTorrent returns the torrent under the table cursor.
func (s *State) SelectedTorrent() (qbt.Torrent, bool) {
	i, ok := s.Table.Selected()
	if !ok {
		return qbt.Torrent{}, false
	}
	return s.Cache.Torrent(i)
}

// SublistLen is the number of rows on the current info tab.
func (s *State) SublistLen() int {
	switch s.InfoTab {
	case TabFiles:
		return len(s.Cache.Files)
	case TabTrackers:
		return len(s.Cache.Trackers)
	case TabPeers:
		return len(s.Cache.Peers)
	default:
		return 0
	}
}

// SetInfoTab switches the info tab and clears the sublist selection.
func (s *State) SetInfoTab(tab InfoTab) {
	s.InfoTab = tab
	s.Sublist.Clear()
}

// MoveTable moves the table cursor by delta rows.
func (s *State) MoveTable(delta int) {
	before, hadSel := s.Table.Selected()
	n := len(s.Cache.Torrents)
	if delta > 0 {
		s.Table.Next(n)
	} else if delta < 0 {
		s.Table.Previous(n)
	}
	if after, ok := s.Table.Selected(); ok != hadSel || after != before {
		s.Sublist.Clear()
	}
}

// MoveSublist moves the info sublist cursor by delta rows.
func (s *State) MoveSublist(delta int) {
	n := s.SublistLen()
	if delta > 0 {
		s.Sublist.Next(n)
	} else if delta < 0 {
		s.Sublist.Previous(n)
	}
}

// SetNotice replaces the status line message.
func (s *State) SetNotice(level NoticeLevel, text string) {
	s.Notice = Notice{Text: text, Level: level, At: s.clock()}
}

// ActiveNotice returns the notice if it has not expired.
func (s *State) ActiveNotice() (Notice, bool) {
	if s.Notice.Text == "" {
		return Notice{}, false
	}
	if s.clock().Sub(s.Notice.At) > NoticeTTL {
		return Notice{}, false
	}
	return s.Notice, true
}

func (s *State) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
