package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	qbt "github.com/autobrr/go-qbittorrent"
	"github.com/rs/zerolog"

	"github.com/five82/qbtui/internal/config"
	"github.com/five82/qbtui/internal/qbit"
)

type fakeAPI struct {
	torrents []qbt.Torrent
	files    qbt.TorrentFiles
	trackers []qbt.TorrentTracker
	peers    map[string]qbt.TorrentPeer
	err      error

	calls   []string
	magnets []string
	uploads []string
}

var _ qbit.API = (*fakeAPI)(nil)

func (f *fakeAPI) Torrents(context.Context) ([]qbt.Torrent, error) {
	f.calls = append(f.calls, "torrents")
	return f.torrents, f.err
}

func (f *fakeAPI) Files(_ context.Context, hash string) (qbt.TorrentFiles, error) {
	f.calls = append(f.calls, "files:"+hash)
	return f.files, f.err
}

func (f *fakeAPI) Trackers(_ context.Context, hash string) ([]qbt.TorrentTracker, error) {
	f.calls = append(f.calls, "trackers:"+hash)
	return f.trackers, f.err
}

func (f *fakeAPI) Peers(_ context.Context, hash string) (map[string]qbt.TorrentPeer, error) {
	f.calls = append(f.calls, "peers:"+hash)
	return f.peers, f.err
}

func (f *fakeAPI) AddMagnet(_ context.Context, link string) error {
	f.calls = append(f.calls, "add_magnet")
	f.magnets = append(f.magnets, link)
	return f.err
}

func (f *fakeAPI) AddFile(_ context.Context, name string, _ []byte) error {
	f.calls = append(f.calls, "add_file")
	f.uploads = append(f.uploads, name)
	return f.err
}

type memStore struct {
	saved []config.Record
	err   error
}

func (m *memStore) Save(_ string, rec config.Record) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, rec)
	return nil
}

type harness struct {
	api     *fakeAPI
	store   *memStore
	disp    *Dispatcher
	st      *State
	clients []config.Record
}

func configured() config.Record {
	return config.Record{APIURL: "http://localhost:8080", Username: "admin", Password: "adminadmin"}
}

func torrents(n int) []qbt.Torrent {
	out := make([]qbt.Torrent, n)
	for i := range out {
		out[i] = qbt.Torrent{Hash: fmt.Sprintf("hash%d", i), Name: fmt.Sprintf("torrent %d", i)}
	}
	return out
}

func newHarness(t *testing.T, cfg config.Record) *harness {
	t.Helper()
	h := &harness{api: &fakeAPI{}, store: &memStore{}}
	h.disp = NewDispatcher(func(rec config.Record) (qbit.API, error) {
		h.clients = append(h.clients, rec)
		return h.api, nil
	}, h.store, zerolog.Nop())
	h.st = New(cfg)
	return h
}

func (h *harness) drain(msg Message) Chain {
	return h.disp.Drain(context.Background(), h.st, msg)
}

func wantTrace(t *testing.T, got Chain, want ...Message) {
	t.Helper()
	if got.Truncated {
		t.Fatalf("chain %v was truncated", got.Trace)
	}
	if !slices.Equal(got.Trace, want) {
		t.Fatalf("trace = %v, want %v", got.Trace, want)
	}
}

func wantMode(t *testing.T, st *State, want Mode) {
	t.Helper()
	if st.Mode != want {
		t.Fatalf("Mode = %s, want %s", st.Mode, want)
	}
}

func TestNew_FirstRunOpensConfigEditor(t *testing.T) {
	st := New(config.Default())
	wantMode(t, st, ModeConfigEditor)
	if !st.ConfigEditorOpen() {
		t.Fatalf("ConfigEditorOpen() = false, want true")
	}
	if st.Editor.Field() != FieldURL || st.Editor.Cursor() != len("http://localhost:8080") {
		t.Fatalf("editor at %s:%d, want url at end", st.Editor.Field(), st.Editor.Cursor())
	}

	st = New(configured())
	wantMode(t, st, ModeNormal)
	if !st.Running {
		t.Fatalf("Running = false, want true")
	}
}

func TestDrain_RefreshClampsSelection(t *testing.T) {
	h := newHarness(t, configured())
	h.api.torrents = torrents(5)

	wantTrace(t, h.drain(RefreshTorrents), RefreshTorrents)
	wantSelected(t, &h.st.Table, 0)

	h.st.Table.Previous(5)
	wantSelected(t, &h.st.Table, 4)

	h.api.torrents = torrents(3)
	h.drain(RefreshTorrents)
	wantSelected(t, &h.st.Table, 2)

	h.api.torrents = nil
	h.drain(RefreshTorrents)
	wantNone(t, &h.st.Table)
}

func TestDrain_RefreshFailureKeepsSnapshot(t *testing.T) {
	h := newHarness(t, configured())
	h.api.torrents = torrents(2)
	h.drain(RefreshTorrents)

	h.api.err = errors.New("connection refused")
	h.drain(RefreshTorrents)

	if len(h.st.Cache.Torrents) != 2 {
		t.Fatalf("len(Torrents) = %d, want 2", len(h.st.Cache.Torrents))
	}
	if h.st.Cache.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", h.st.Cache.ConsecutiveFailures)
	}
	notice, ok := h.st.ActiveNotice()
	if !ok {
		t.Fatalf("ActiveNotice() = none, want error notice")
	}
	if notice.Level != NoticeError || !strings.Contains(notice.Text, "connection refused") {
		t.Fatalf("notice = %#v, want error mentioning connection refused", notice)
	}
	if !h.st.Running {
		t.Fatalf("Running = false after remote failure")
	}
}

func TestDrain_SaveConfigPersistsAndRefreshes(t *testing.T) {
	h := newHarness(t, config.Default())
	wantMode(t, h.st, ModeConfigEditor)

	want := config.Record{APIURL: "http://x:8080", Username: "a", Password: "b"}
	h.st.Scratch.Config = want
	wantTrace(t, h.drain(SaveConfig), SaveConfig, ToggleConfigEditor, RefreshTorrents)

	if h.st.Config != want {
		t.Fatalf("Config = %#v, want %#v", h.st.Config, want)
	}
	if len(h.store.saved) != 1 || h.store.saved[0] != want {
		t.Fatalf("saved = %#v, want [%#v]", h.store.saved, want)
	}
	wantMode(t, h.st, ModeNormal)
	if h.st.ConfigEditorOpen() {
		t.Fatalf("ConfigEditorOpen() = true after save")
	}
	if len(h.clients) == 0 || h.clients[len(h.clients)-1] != want {
		t.Fatalf("client built for %#v, want %#v", h.clients, want)
	}
}

func TestDrain_SaveConfigRebuildsClient(t *testing.T) {
	h := newHarness(t, configured())
	h.drain(RefreshTorrents)
	h.drain(RefreshTorrents)
	if len(h.clients) != 1 {
		t.Fatalf("clients built = %d, want 1", len(h.clients))
	}

	h.drain(ToggleConfigEditor)
	h.st.Scratch.Config.APIURL = "http://other:9090"
	h.drain(SaveConfig)
	if len(h.clients) != 2 {
		t.Fatalf("clients built = %d, want 2", len(h.clients))
	}
	if got := h.clients[1].APIURL; got != "http://other:9090" {
		t.Fatalf("rebuilt client url = %q, want http://other:9090", got)
	}
}

func TestDrain_SaveConfigStoreErrorStillCloses(t *testing.T) {
	h := newHarness(t, config.Default())
	h.store.err = errors.New("read-only file system")
	h.st.Scratch.Config.Password = "pw"

	out := h.disp.Dispatch(h.st, SaveConfig)
	if out.Err == nil {
		t.Fatalf("Dispatch(SaveConfig) Err = nil, want store error")
	}
	if out.Next != ToggleConfigEditor {
		t.Fatalf("Next = %s, want %s", out.Next, ToggleConfigEditor)
	}
	if h.st.Config.Password != "pw" {
		t.Fatalf("committed Password = %q, want pw", h.st.Config.Password)
	}
}

func TestDrain_CancelConfigDiscardsScratch(t *testing.T) {
	h := newHarness(t, configured())
	h.drain(ToggleConfigEditor)
	wantMode(t, h.st, ModeConfigEditor)

	h.st.Scratch.Config.Username = "mallory"
	wantTrace(t, h.drain(ToggleConfigEditor), ToggleConfigEditor, RefreshTorrents)

	if h.st.Config.Username != "admin" || h.st.Scratch.Config.Username != "admin" {
		t.Fatalf("usernames = %q/%q, want admin/admin", h.st.Config.Username, h.st.Scratch.Config.Username)
	}
	if len(h.store.saved) != 0 {
		t.Fatalf("saved = %#v, want nothing", h.store.saved)
	}
}

func TestDrain_EmptyMagnetIsRejected(t *testing.T) {
	h := newHarness(t, configured())
	h.api.torrents = torrents(2)
	h.drain(RefreshTorrents)
	h.drain(ToggleAddTorrentPopup)
	wantMode(t, h.st, ModeAddTorrent)
	calls := len(h.api.calls)

	out := h.disp.Dispatch(h.st, AddTorrentByMagnet)
	if !errors.Is(out.Err, qbit.ErrEmptyMagnet) {
		t.Fatalf("Err = %v, want %v", out.Err, qbit.ErrEmptyMagnet)
	}
	if out.Call != nil {
		t.Fatalf("Call != nil for rejected input")
	}
	if len(h.api.calls) != calls {
		t.Fatalf("api calls = %v, want no new calls", h.api.calls)
	}
	if len(h.st.Cache.Torrents) != 2 {
		t.Fatalf("len(Torrents) = %d, want 2", len(h.st.Cache.Torrents))
	}
	wantMode(t, h.st, ModeAddTorrent)
}

func TestDrain_AddMagnetClosesPopupAndRefreshes(t *testing.T) {
	h := newHarness(t, configured())
	h.drain(ToggleAddTorrentPopup)
	h.st.Scratch.Magnet = "magnet:?xt=urn:btih:c9e15763f722f23e98a29decdfae341b98d53056&dn=Cosmos"

	wantTrace(t, h.drain(AddTorrentByMagnet), AddTorrentByMagnet, ToggleAddTorrentPopup, RefreshTorrents)
	wantMode(t, h.st, ModeNormal)
	if h.st.Scratch.Magnet != "" {
		t.Fatalf("Magnet = %q, want cleared", h.st.Scratch.Magnet)
	}
	if len(h.api.magnets) != 1 {
		t.Fatalf("magnets = %v, want one", h.api.magnets)
	}
}

func TestDrain_AddFileUploadsTorrent(t *testing.T) {
	h := newHarness(t, configured())
	h.drain(ToggleAddTorrentPopup)

	path := filepath.Join(t.TempDir(), "test.torrent")
	body := "d4:infod6:lengthi12e4:name8:test.txt12:piece lengthi16384e6:pieces20:" + strings.Repeat("a", 20) + "ee"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write torrent: %v", err)
	}
	h.st.Scratch.FilePath = path

	wantTrace(t, h.drain(AddTorrentByFile), AddTorrentByFile, ToggleAddTorrentPopup, RefreshTorrents)
	if !slices.Equal(h.api.uploads, []string{"test.txt"}) {
		t.Fatalf("uploads = %v, want [test.txt]", h.api.uploads)
	}
	wantMode(t, h.st, ModeNormal)
}

func TestDrain_AddFailureKeepsPopupOpen(t *testing.T) {
	h := newHarness(t, configured())
	h.drain(ToggleAddTorrentPopup)
	h.st.Scratch.Magnet = "magnet:?xt=urn:btih:c9e15763f722f23e98a29decdfae341b98d53056"
	h.api.err = errors.New("unsupported media type")

	wantTrace(t, h.drain(AddTorrentByMagnet), AddTorrentByMagnet)
	wantMode(t, h.st, ModeAddTorrent)
}

func TestDrain_InfoPopupFetchesTabData(t *testing.T) {
	h := newHarness(t, configured())
	h.api.torrents = torrents(3)
	h.api.trackers = []qbt.TorrentTracker{{Url: "udp://a"}, {Url: "udp://b"}}
	h.drain(RefreshTorrents)

	// The details tab needs no fetch.
	wantTrace(t, h.drain(ToggleInfoPopup), ToggleInfoPopup)
	if !h.st.InfoOpen {
		t.Fatalf("InfoOpen = false, want true")
	}

	h.st.SetInfoTab(TabTrackers)
	wantTrace(t, h.drain(h.st.InfoTab.FetchMessage()), FetchTrackers)
	if len(h.st.Cache.Trackers) != 2 || h.st.Cache.DetailHash != "hash0" {
		t.Fatalf("trackers = %d for %q, want 2 for hash0", len(h.st.Cache.Trackers), h.st.Cache.DetailHash)
	}

	wantTrace(t, h.drain(RefreshTorrents), RefreshTorrents, FetchTrackers)
}

func TestDrain_FetchWithoutSelectionClears(t *testing.T) {
	h := newHarness(t, configured())
	h.st.Cache.SetFiles("stale", qbt.TorrentFiles{{Name: "a"}})

	wantTrace(t, h.drain(FetchFiles), FetchFiles)
	if len(h.st.Cache.Files) != 0 {
		t.Fatalf("Files = %v, want cleared", h.st.Cache.Files)
	}
	if len(h.api.calls) != 0 {
		t.Fatalf("api calls = %v, want none", h.api.calls)
	}
}

func TestComplete_DiscardsStaleDetail(t *testing.T) {
	h := newHarness(t, configured())
	h.api.torrents = torrents(2)
	h.drain(RefreshTorrents)

	next := h.disp.Complete(h.st, Result{Msg: FetchPeers, Hash: "hash1", Peers: map[string]qbt.TorrentPeer{"1.2.3.4:1": {}}})
	if next != None {
		t.Fatalf("Complete() = %s, want none", next)
	}
	if len(h.st.Cache.Peers) != 0 {
		t.Fatalf("Peers = %v, want stale result discarded", h.st.Cache.Peers)
	}
}

func TestDispatch_InfoPopupNeedsSelection(t *testing.T) {
	h := newHarness(t, configured())
	wantTrace(t, h.drain(ToggleInfoPopup), ToggleInfoPopup)
	if h.st.InfoOpen {
		t.Fatalf("InfoOpen = true without a selection")
	}
}

func TestDispatch_ModeGuards(t *testing.T) {
	h := newHarness(t, configured())

	h.drain(ToggleAddTorrentPopup)
	h.drain(ToggleConfigEditor)
	wantMode(t, h.st, ModeAddTorrent)
	h.drain(SaveConfig)
	if len(h.store.saved) != 0 {
		t.Fatalf("SaveConfig outside the config editor persisted %#v", h.store.saved)
	}

	h.drain(ToggleAddTorrentPopup)
	h.drain(ToggleConfigEditor)
	wantMode(t, h.st, ModeConfigEditor)
	h.drain(ToggleAddTorrentPopup)
	wantMode(t, h.st, ModeConfigEditor)
	out := h.disp.Dispatch(h.st, AddTorrentByMagnet)
	if out.Call != nil || out.Err != nil {
		t.Fatalf("AddTorrentByMagnet in config editor = %#v, want no effect", out)
	}
}

func TestDispatch_QuitFromEveryMode(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeConfigEditor, ModeAddTorrent} {
		h := newHarness(t, configured())
		h.st.Mode = mode
		h.drain(Quit)
		if h.st.Running {
			t.Fatalf("Running = true after Quit in %s", mode)
		}
	}
}

func TestDrain_ChainsTerminateWithoutRepeats(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeConfigEditor, ModeAddTorrent} {
		for _, infoOpen := range []bool{false, true} {
			for _, msg := range Messages() {
				name := fmt.Sprintf("%s/info=%v/%s", mode, infoOpen, msg)
				t.Run(name, func(t *testing.T) {
					h := newHarness(t, configured())
					h.api.torrents = torrents(3)
					h.drain(RefreshTorrents)
					h.st.Mode = mode
					h.st.InfoOpen = infoOpen && mode == ModeNormal
					h.st.InfoTab = TabPeers
					h.st.Scratch.Magnet = "magnet:?xt=urn:btih:c9e15763f722f23e98a29decdfae341b98d53056"

					ch := h.drain(msg)
					if ch.Truncated {
						t.Fatalf("chain %v hit MaxChain before ending", ch.Trace)
					}
					seen := map[Message]bool{}
					for _, m := range ch.Trace {
						if seen[m] {
							t.Fatalf("message %s repeated in %v", m, ch.Trace)
						}
						seen[m] = true
					}
				})
			}
		}
	}
}

func TestRun_TruncatesAtMaxChain(t *testing.T) {
	h := newHarness(t, configured())
	h.api.torrents = torrents(3)
	h.drain(RefreshTorrents)
	h.st.InfoOpen = true
	h.st.InfoTab = TabFiles

	ch := Chain{Trace: make([]Message, MaxChain-1)}
	call := h.disp.Run(h.st, &ch, RefreshTorrents)
	if call == nil {
		t.Fatalf("Run(RefreshTorrents) returned no call")
	}
	call = h.disp.Resume(h.st, &ch, call(context.Background()))
	if call != nil {
		t.Fatalf("Resume ran past MaxChain")
	}
	if !ch.Truncated {
		t.Fatalf("Truncated = false, want true")
	}
	if len(ch.Trace) != MaxChain {
		t.Fatalf("len(Trace) = %d, want %d", len(ch.Trace), MaxChain)
	}
}
