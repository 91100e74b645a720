// Package ui is the Bubble Tea front-end for qbtui.
//
// # Architecture Overview
//
// Model wraps a *session.State and a *session.Dispatcher. Update is the only
// place the state is written; View renders it. Remote work returned by the
// dispatcher runs as a tea.Cmd and comes back as a resultMsg, which is passed
// to Dispatcher.Resume to continue the chain.
//
// # Event Flow
//
//	tea.KeyMsg ──► pending? ──yes──► deferred queue
//	                  │no
//	                  ▼
//	        KeyMap.Handle ─► Dispatcher.Run
//	                              │
//	              Dispatch ── Call? ──► callCmd ──► resultMsg ──► Resume
//	                              │                                  │
//	                              └────────── next message ◄─────────┘
//
// While a call is in flight every key except ctrl+c is queued; ctrl+c quits
// at once. When the chain ends the queued keys are replayed in order, so at
// most one request is ever in flight. A 100ms tick keeps frames fresh; it
// never fetches.
//
// # Package Structure
//
//   - app.go: Model, Update loop, commands and Run
//   - table.go: torrent table, windowing and scrollbar
//   - info.go: info popup with Details, Files, Trackers and Peers tabs
//   - popups.go: config and add-torrent popups, input scrolling
//   - footer.go: header line, key help, spinner and notices
//   - logs.go: diagnostic log overlay backed by logtail
//   - help.go, keys.go: help overlay and presentation keys
//   - theme.go: color themes (Nightfox, Kanagawa, Slate)
//   - format.go, strings.go: value formatting and text helpers
//
// # Presentation Keys
//
// In Normal mode with no popup open, ? toggles help, T cycles the theme
// (persisted through prefs) and L opens the log overlay. These never reach
// the dispatcher.
package ui
