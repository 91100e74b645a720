package session

// Mode is the top-level input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeConfigEditor
	ModeAddTorrent
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeConfigEditor:
		return "config"
	case ModeAddTorrent:
		return "add"
	default:
		return "unknown"
	}
}

// InfoTab selects the pane shown in the torrent info popup.
type InfoTab int

const (
	TabDetails InfoTab = iota
	TabFiles
	TabTrackers
	TabPeers
)

var infoTabs = []InfoTab{TabDetails, TabFiles, TabTrackers, TabPeers}

// InfoTabs lists the tabs in display order.
func InfoTabs() []InfoTab {
	return append([]InfoTab(nil), infoTabs...)
}

// Next returns the following tab, wrapping.
func (t InfoTab) Next() InfoTab {
	return infoTabs[(int(t)+1)%len(infoTabs)]
}

// Previous returns the preceding tab, wrapping.
func (t InfoTab) Previous() InfoTab {
	return infoTabs[(int(t)-1+len(infoTabs))%len(infoTabs)]
}

// FetchMessage is the message that loads the data shown on the tab.
func (t InfoTab) FetchMessage() Message {
	switch t {
	case TabFiles:
		return FetchFiles
	case TabTrackers:
		return FetchTrackers
	case TabPeers:
		return FetchPeers
	default:
		return None
	}
}

func (t InfoTab) String() string {
	switch t {
	case TabDetails:
		return "Details"
	case TabFiles:
		return "Files"
	case TabTrackers:
		return "Trackers"
	case TabPeers:
		return "Peers"
	default:
		return "Unknown"
	}
}

// AddTab selects how a torrent is added.
type AddTab int

const (
	AddMagnet AddTab = iota
	AddFile
)

// Toggle switches between the two add tabs.
func (t AddTab) Toggle() AddTab {
	if t == AddMagnet {
		return AddFile
	}
	return AddMagnet
}

// Field returns the input field edited on the tab.
func (t AddTab) Field() Field {
	if t == AddFile {
		return FieldFilePath
	}
	return FieldMagnet
}

func (t AddTab) String() string {
	if t == AddFile {
		return "File"
	}
	return "Magnet Link"
}
