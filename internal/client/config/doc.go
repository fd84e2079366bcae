// Package config loads runtime configuration for the polyglot CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-t int      request timeout (seconds)
//	-f string   session token file
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "timeout": "10s",
//	  "token_file": "/home/me/.config/polyglot/token"
//	}
//
// Flags recognised here are listed in FlagNames so the caller can strip them
// from the command line before dispatching a command.
package config
