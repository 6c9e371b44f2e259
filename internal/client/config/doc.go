// Package config loads runtime configuration for the moviebook client.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   backend base URL (default http://127.0.0.1:8080)
//	-d int      redirect delay after registration in milliseconds (default 2000)
//	-l string   log level (default info)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "redirect_delay": "2s",
//	  "session_dsn": ":memory:",
//	  "log_level": "debug"
//	}
package config
