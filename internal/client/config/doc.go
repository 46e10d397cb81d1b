// Package config loads runtime configuration for the gophslides CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config/-c.
//  3. Command-line flags registered by RegisterFlags, when set explicitly.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "public_origin": "https://slides.example.com",
//	  "request_timeout": "10s",
//	  "library_path": "/home/me/.config/gophslides/library.db"
//	}
//
// request_timeout accepts a duration string or integer nanoseconds
// (timex.Duration).
package config
