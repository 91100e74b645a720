package session

// Message is an intent produced by a key press or by a previous message.
type Message int

const (
	// None ends a chain.
	None Message = iota
	RefreshTorrents
	FetchFiles
	FetchTrackers
	FetchPeers
	ToggleInfoPopup
	ToggleAddTorrentPopup
	AddTorrentByMagnet
	AddTorrentByFile
	ToggleConfigEditor
	SaveConfig
	Quit
)

// Messages lists every message kind except None.
func Messages() []Message {
	return []Message{
		RefreshTorrents,
		FetchFiles,
		FetchTrackers,
		FetchPeers,
		ToggleInfoPopup,
		ToggleAddTorrentPopup,
		AddTorrentByMagnet,
		AddTorrentByFile,
		ToggleConfigEditor,
		SaveConfig,
		Quit,
	}
}

func (m Message) String() string {
	switch m {
	case None:
		return "none"
	case RefreshTorrents:
		return "refresh_torrents"
	case FetchFiles:
		return "fetch_files"
	case FetchTrackers:
		return "fetch_trackers"
	case FetchPeers:
		return "fetch_peers"
	case ToggleInfoPopup:
		return "toggle_info_popup"
	case ToggleAddTorrentPopup:
		return "toggle_add_torrent_popup"
	case AddTorrentByMagnet:
		return "add_torrent_by_magnet"
	case AddTorrentByFile:
		return "add_torrent_by_file"
	case ToggleConfigEditor:
		return "toggle_config_editor"
	case SaveConfig:
		return "save_config"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}
