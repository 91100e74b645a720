// Package session is the message-driven core of qbtui.
//
// # Overview
//
// State is the single mutable aggregate the event loop owns. Key presses are
// turned into at most one Message by KeyMap.Handle; a Dispatcher applies the
// message and may chain a follow-up. Rendering reads State and never writes
// it.
//
//	key ──► KeyMap.Handle ──► Message ──► Dispatcher.Dispatch
//	                                          │
//	                          ┌───────────────┴───────────────┐
//	                          ▼                               ▼
//	                    Outcome.Next                    Outcome.Call
//	                          │                               │ (tea.Cmd or inline)
//	                          │                               ▼
//	                          │                     Dispatcher.Complete
//	                          └──────────► next message ◄─────┘
//
// # Modes
//
// Mode is Normal, ConfigEditor or AddTorrent. The config and add-torrent
// popups are visible exactly when their mode is active. The info popup is a
// Normal-mode flag with four tabs; switching tabs yields the fetch message
// for the new tab.
//
// # Chains
//
// A chain never revisits a message kind and never exceeds MaxChain:
//
//	SaveConfig → ToggleConfigEditor → RefreshTorrents → Fetch*
//	AddTorrentBy* → ToggleAddTorrentPopup → RefreshTorrents → Fetch*
//	ToggleInfoPopup → Fetch*
//
// Run and Resume are the only chain driver. Run dispatches until a Call is
// needed or the chain ends; Resume completes a Result and keeps going. The
// Chain records the trace and whether MaxChain cut it short. Drain runs Calls
// inline; the UI runs them as commands so rendering continues while a request
// is in flight.
//
// # Remote Calls
//
// A Call closes over an API client and its arguments and never touches State.
// Each call runs under RequestTimeout. Failures keep cached data, bump the
// cache failure counter, are logged and surface as a transient Notice.
//
// # Selection and Editing
//
// Tracker is a cyclic selection used for the main table and the info
// sublist. Editor is a rune cursor over one Scratch field; the scratch copy of
// the config reaches the committed record only through SaveConfig.
package session
