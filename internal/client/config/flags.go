package config

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	FlagConfig  = "config"
	FlagServer  = "server"
	FlagOrigin  = "origin"
	FlagTimeout = "timeout"
	FlagLibrary = "library"
)

// RegisterFlags declares the config flags on fs. Defaults shown in help come
// from LoadDefaults; only flags the user sets override the JSON file.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.StringP(FlagServer, "a", d.ServerEndpointAddr, "address and port of the gRPC server")
	fs.StringP(FlagOrigin, "o", d.PublicOrigin, "origin used in share links")
	fs.Duration(FlagTimeout, d.RequestTimeout, "timeout of a single API call")
	fs.String(FlagLibrary, d.LibraryPath, "path of the local deck library (default: user config dir)")
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	if fs.Changed(FlagServer) {
		if cfg.ServerEndpointAddr, err = fs.GetString(FlagServer); err != nil {
			return err
		}
	}
	if fs.Changed(FlagOrigin) {
		if cfg.PublicOrigin, err = fs.GetString(FlagOrigin); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTimeout) {
		var d time.Duration
		if d, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}
	if fs.Changed(FlagLibrary) {
		if cfg.LibraryPath, err = fs.GetString(FlagLibrary); err != nil {
			return err
		}
	}
	return nil
}
