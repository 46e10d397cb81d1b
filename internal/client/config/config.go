package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the gophslides CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - PublicOrigin: scheme://host used when printing share links.
//   - RequestTimeout: upper bound for a single API call.
//   - LibraryPath: SQLite file of remembered decks; empty means the
//     per-user default location.
type Config struct {
	ServerEndpointAddr string
	PublicOrigin       string
	RequestTimeout     time.Duration
	LibraryPath        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.PublicOrigin = "http://localhost:3000"
	c.RequestTimeout = 10 * time.Second
	c.LibraryPath = ""
}

// LoadConfig applies defaults, then the JSON file at path (if any), then the
// flags of fs that were set explicitly.
func LoadConfig(path string, fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}
