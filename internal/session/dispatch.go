package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	qbt "github.com/autobrr/go-qbittorrent"
	"github.com/rs/zerolog"

	"github.com/five82/qbtui/internal/config"
	"github.com/five82/qbtui/internal/qbit"
)

const (
	// MaxChain bounds the number of messages handled for one intent.
	MaxChain = 4

	// RequestTimeout bounds every remote call.
	RequestTimeout = 10 * time.Second
)

// ClientFactory builds an API client for a config record.
type ClientFactory func(config.Record) (qbit.API, error)

// ConfigSaver persists the committed config record.
type ConfigSaver interface {
	Save(app string, rec config.Record) error
}

// Call performs remote work. It never touches State.
type Call func(ctx context.Context) Result

// Result carries the outcome of a Call back to the event loop.
type Result struct {
	Msg  Message
	Hash string

	Torrents []qbt.Torrent
	Files    qbt.TorrentFiles
	Trackers []qbt.TorrentTracker
	Peers    map[string]qbt.TorrentPeer

	Err error
}

// Outcome describes what Dispatch did with a message.
type Outcome struct {
	// Next is the follow-up message when no Call is needed.
	Next Message
	// Call is remote work whose Result must go to Complete.
	Call Call
	// Err is a validation or persistence error already shown as a notice.
	Err error
}

// Dispatcher applies messages to State.
type Dispatcher struct {
	newClient ClientFactory
	store     ConfigSaver
	log       zerolog.Logger

	api qbit.API
}

// NewDispatcher returns a Dispatcher that builds clients with newClient and
// persists config through store.
func NewDispatcher(newClient ClientFactory, store ConfigSaver, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{newClient: newClient, store: store, log: log}
}

// Dispatch applies the local effects of msg.
func (d *Dispatcher) Dispatch(st *State, msg Message) Outcome {
	d.log.Debug().Str("message", msg.String()).Str("mode", st.Mode.String()).Msg("dispatch")

	switch msg {
	case None:
		return Outcome{}
	case Quit:
		st.Running = false
		return Outcome{}
	case RefreshTorrents:
		return d.refresh(st)
	case FetchFiles, FetchTrackers, FetchPeers:
		return d.fetchDetail(st, msg)
	case ToggleInfoPopup:
		return d.toggleInfo(st)
	case ToggleAddTorrentPopup:
		return d.toggleAdd(st)
	case AddTorrentByMagnet:
		return d.addMagnet(st)
	case AddTorrentByFile:
		return d.addFile(st)
	case ToggleConfigEditor:
		return d.toggleConfig(st)
	case SaveConfig:
		return d.saveConfig(st)
	default:
		d.log.Warn().Int("message", int(msg)).Msg("unknown message")
		return Outcome{}
	}
}

// Complete applies the Result of a Call and returns the follow-up message.
func (d *Dispatcher) Complete(st *State, res Result) Message {
	if res.Err != nil {
		d.fail(st, res.Msg, res.Err)
		return None
	}

	switch res.Msg {
	case RefreshTorrents:
		st.Cache.SetTorrents(res.Torrents)
		before, hadSel := st.Table.Selected()
		st.Table.Clamp(len(st.Cache.Torrents))
		after, ok := st.Table.Selected()
		if !ok {
			st.InfoOpen = false
			st.Sublist.Clear()
			st.Cache.ClearDetails()
			return None
		}
		if !hadSel || before != after {
			st.Sublist.Clear()
		}
		if st.InfoOpen {
			return st.InfoTab.FetchMessage()
		}
		return None
	case FetchFiles, FetchTrackers, FetchPeers:
		selected, ok := st.SelectedTorrent()
		if !ok || selected.Hash != res.Hash {
			d.log.Debug().Str("hash", res.Hash).Str("message", res.Msg.String()).Msg("discarding stale detail result")
			return None
		}
		switch res.Msg {
		case FetchFiles:
			st.Cache.SetFiles(res.Hash, res.Files)
		case FetchTrackers:
			st.Cache.SetTrackers(res.Hash, res.Trackers)
		case FetchPeers:
			st.Cache.SetPeers(res.Hash, res.Peers)
		}
		st.Sublist.Shrink(st.SublistLen())
		return None
	case AddTorrentByMagnet, AddTorrentByFile:
		d.log.Info().Str("message", res.Msg.String()).Msg("torrent added")
		st.SetNotice(NoticeInfo, "Torrent added")
		if st.Mode == ModeAddTorrent {
			return ToggleAddTorrentPopup
		}
		return None
	default:
		return None
	}
}

// Chain records the messages handled for one intent.
type Chain struct {
	Trace []Message
	// Truncated is set when the chain hit MaxChain with a message left over.
	Truncated bool
}

// Run dispatches msg and its local follow-ups until a remote call is needed
// or the chain ends. A non-nil Call must be run and its Result handed to
// Resume with the same Chain.
func (d *Dispatcher) Run(st *State, ch *Chain, msg Message) Call {
	for msg != None {
		if len(ch.Trace) >= MaxChain {
			ch.Truncated = true
			d.log.Warn().Str("message", msg.String()).Msg("message chain too long; dropping")
			return nil
		}
		ch.Trace = append(ch.Trace, msg)

		out := d.Dispatch(st, msg)
		if out.Call != nil {
			return out.Call
		}
		msg = out.Next
	}
	return nil
}

// Resume applies res and continues the chain it belongs to.
func (d *Dispatcher) Resume(st *State, ch *Chain, res Result) Call {
	return d.Run(st, ch, d.Complete(st, res))
}

// Drain handles msg and every chained message, running Calls inline.
func (d *Dispatcher) Drain(ctx context.Context, st *State, msg Message) Chain {
	var ch Chain
	call := d.Run(st, &ch, msg)
	for call != nil {
		call = d.Resume(st, &ch, call(ctx))
	}
	return ch
}

func (d *Dispatcher) refresh(st *State) Outcome {
	api, err := d.client(st.Config)
	if err != nil {
		d.fail(st, RefreshTorrents, err)
		return Outcome{Err: err}
	}
	return Outcome{Call: timed(func(ctx context.Context) Result {
		torrents, err := api.Torrents(ctx)
		return Result{Msg: RefreshTorrents, Torrents: torrents, Err: err}
	})}
}

func (d *Dispatcher) fetchDetail(st *State, msg Message) Outcome {
	t, ok := st.SelectedTorrent()
	if !ok {
		st.Cache.ClearDetails()
		st.Sublist.Clear()
		return Outcome{}
	}
	api, err := d.client(st.Config)
	if err != nil {
		d.fail(st, msg, err)
		return Outcome{Err: err}
	}

	hash := t.Hash
	return Outcome{Call: timed(func(ctx context.Context) Result {
		res := Result{Msg: msg, Hash: hash}
		switch msg {
		case FetchFiles:
			res.Files, res.Err = api.Files(ctx, hash)
		case FetchTrackers:
			res.Trackers, res.Err = api.Trackers(ctx, hash)
		case FetchPeers:
			res.Peers, res.Err = api.Peers(ctx, hash)
		}
		return res
	})}
}

func (d *Dispatcher) toggleInfo(st *State) Outcome {
	if st.Mode != ModeNormal {
		return Outcome{}
	}
	if st.InfoOpen {
		st.InfoOpen = false
		st.Sublist.Clear()
		return Outcome{}
	}
	if _, ok := st.SelectedTorrent(); !ok {
		return Outcome{}
	}
	st.InfoOpen = true
	st.Sublist.Clear()
	return Outcome{Next: st.InfoTab.FetchMessage()}
}

func (d *Dispatcher) toggleAdd(st *State) Outcome {
	switch st.Mode {
	case ModeConfigEditor:
		return Outcome{}
	case ModeAddTorrent:
		st.Mode = ModeNormal
		st.Scratch.Magnet = ""
		st.Scratch.FilePath = ""
		return Outcome{Next: RefreshTorrents}
	default:
		st.Mode = ModeAddTorrent
		st.InfoOpen = false
		st.Sublist.Clear()
		st.Scratch.Magnet = ""
		st.Scratch.FilePath = ""
		st.AddTab = AddMagnet
		st.Editor.Focus(&st.Scratch, FieldMagnet)
		return Outcome{}
	}
}

func (d *Dispatcher) addMagnet(st *State) Outcome {
	if st.Mode != ModeAddTorrent {
		return Outcome{}
	}
	link, err := qbit.ValidateMagnet(st.Scratch.Magnet)
	if err != nil {
		return d.reject(st, err)
	}
	api, err := d.client(st.Config)
	if err != nil {
		d.fail(st, AddTorrentByMagnet, err)
		return Outcome{Err: err}
	}
	return Outcome{Call: timed(func(ctx context.Context) Result {
		return Result{Msg: AddTorrentByMagnet, Err: api.AddMagnet(ctx, link)}
	})}
}

func (d *Dispatcher) addFile(st *State) Outcome {
	if st.Mode != ModeAddTorrent {
		return Outcome{}
	}
	file, err := qbit.ReadTorrentFile(st.Scratch.FilePath)
	if err != nil {
		return d.reject(st, err)
	}
	api, err := d.client(st.Config)
	if err != nil {
		d.fail(st, AddTorrentByFile, err)
		return Outcome{Err: err}
	}
	return Outcome{Call: timed(func(ctx context.Context) Result {
		return Result{Msg: AddTorrentByFile, Err: api.AddFile(ctx, file.Name, file.Data)}
	})}
}

func (d *Dispatcher) toggleConfig(st *State) Outcome {
	switch st.Mode {
	case ModeAddTorrent:
		return Outcome{}
	case ModeConfigEditor:
		st.Mode = ModeNormal
		st.Scratch.Config = st.Config
		return Outcome{Next: RefreshTorrents}
	default:
		st.Mode = ModeConfigEditor
		st.InfoOpen = false
		st.Sublist.Clear()
		st.Scratch.Config = st.Config
		st.Editor.Focus(&st.Scratch, FieldURL)
		return Outcome{}
	}
}

func (d *Dispatcher) saveConfig(st *State) Outcome {
	if st.Mode != ModeConfigEditor {
		return Outcome{}
	}
	st.Config = st.Scratch.Config
	d.api = nil

	var saveErr error
	if d.store != nil {
		if err := d.store.Save(config.AppName, st.Config); err != nil {
			saveErr = fmt.Errorf("save config: %w", err)
			d.log.Error().Err(saveErr).Msg("persist config")
			st.SetNotice(NoticeError, saveErr.Error())
		}
	}
	if saveErr == nil {
		d.log.Info().Str("api_url", st.Config.APIURL).Msg("config saved")
		st.SetNotice(NoticeInfo, "Config saved")
	}
	return Outcome{Next: ToggleConfigEditor, Err: saveErr}
}

// client returns the cached API client, building one for cfg if needed.
func (d *Dispatcher) client(cfg config.Record) (qbit.API, error) {
	if d.api != nil {
		return d.api, nil
	}
	if d.newClient == nil {
		return nil, errors.New("no api client configured")
	}
	api, err := d.newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	d.api = api
	return api, nil
}

func (d *Dispatcher) reject(st *State, err error) Outcome {
	d.log.Info().Err(err).Msg("input rejected")
	st.SetNotice(NoticeError, err.Error())
	return Outcome{Err: err}
}

func (d *Dispatcher) fail(st *State, msg Message, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("request timed out after %s: %w", RequestTimeout, err)
	}
	st.Cache.Fail(err)
	d.log.Warn().Err(err).Str("message", msg.String()).Msg("request failed")
	st.SetNotice(NoticeError, err.Error())
}

func timed(call Call) Call {
	return func(ctx context.Context) Result {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		return call(ctx)
	}
}
