// Package config persists the qBittorrent connection settings qbtui uses.
//
// # Overview
//
// A Record holds the three values needed to talk to a qBittorrent WebUI:
// the API URL, the username and the password. Records are stored as TOML
// under a directory keyed by application name, so the same Store can serve
// any caller that passes a different app name.
//
// # Storage Layout
//
//	<user config dir>/qbtui/config.toml
//
// Example file:
//
//	api_url = "http://localhost:8080"
//	username = "admin"
//	password = "adminadmin"
//
// # Loading
//
// Load follows this order:
//
//  1. If the file does not exist, write Default() to it and return it
//  2. Otherwise parse the file on top of Default(), so missing keys keep defaults
//  3. An empty api_url falls back to http://localhost:8080
//
// A file that exists but cannot be read or parsed is an error. The caller
// treats that as fatal at startup.
//
// # First Run
//
// Default() has an empty password. Record.Configured reports false for such
// a record, and the session opens the config editor before any key is
// pressed.
//
// # Saving
//
// Save creates the directory (0755) and writes the file with 0600
// permissions because it contains the WebUI password.
package config
