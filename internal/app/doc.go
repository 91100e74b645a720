// Package app is the composition root of qbtui.
//
// # Overview
//
// Run wires configuration, logging, the API client factory, the session core
// and the UI, then blocks until the user quits or the context is cancelled.
//
//	Run()
//	  ├─> term.IsTerminal()     fail fast without a TTY
//	  ├─> config.NewStore()     ~/.config/qbtui
//	  ├─> openLogger()          ~/.config/qbtui/qbtui.log (zerolog JSON)
//	  ├─> store.Load()          creates config.toml with defaults on first run
//	  ├─> prefs.Load()          theme, falls back to defaults
//	  ├─> session.New()         ConfigEditor first when never configured
//	  └─> ui.Run()              blocks
//
// # Error Handling
//
// Fatal errors are returned wrapped and turn into exit status 1:
//
//   - stdout is not a terminal (ErrNotTerminal)
//   - the config directory, log file or config file cannot be used
//   - the terminal program fails
//
// Everything after startup is recoverable. Remote failures are logged,
// counted in the cache and shown as notices; the loop keeps running.
//
// # Logging
//
// Entries at info and above are written. The in-app log overlay reads the
// same file.
package app
