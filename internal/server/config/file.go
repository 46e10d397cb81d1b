package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophslides/internal/flagx"
	"github.com/dmitrijs2005/gophslides/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the server configuration. Interval
// fields use timex.Duration so files may hold "10m" or integer nanoseconds.
type FileConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	BcryptCost       int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	DefaultTheme     string         `json:"default_theme" yaml:"default_theme"`
	MaxSlides        int            `json:"max_slides" yaml:"max_slides"`
	RedisAddr        string         `json:"redis_addr" yaml:"redis_addr"`
	RedisDB          int            `json:"redis_db" yaml:"redis_db"`
	CacheTTL         timex.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	S3RootUser       string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

func fileConfigFrom(c *Config) *FileConfig {
	return &FileConfig{
		EndpointAddrGRPC: c.EndpointAddrGRPC,
		EndpointAddrHTTP: c.EndpointAddrHTTP,
		DatabaseDSN:      c.DatabaseDSN,
		BcryptCost:       c.BcryptCost,
		DefaultTheme:     c.DefaultTheme,
		MaxSlides:        c.MaxSlides,
		RedisAddr:        c.RedisAddr,
		RedisDB:          c.RedisDB,
		CacheTTL:         timex.Duration{Duration: c.CacheTTL},
		S3RootUser:       c.S3RootUser,
		S3RootPassword:   c.S3RootPassword,
		S3Bucket:         c.S3Bucket,
		S3Region:         c.S3Region,
		S3BaseEndpoint:   c.S3BaseEndpoint,
	}
}

func (f *FileConfig) apply(c *Config) {
	c.EndpointAddrGRPC = f.EndpointAddrGRPC
	c.EndpointAddrHTTP = f.EndpointAddrHTTP
	c.DatabaseDSN = f.DatabaseDSN
	c.BcryptCost = f.BcryptCost
	c.DefaultTheme = f.DefaultTheme
	c.MaxSlides = f.MaxSlides
	c.RedisAddr = f.RedisAddr
	c.RedisDB = f.RedisDB
	c.CacheTTL = f.CacheTTL.Duration
	c.S3RootUser = f.S3RootUser
	c.S3RootPassword = f.S3RootPassword
	c.S3Bucket = f.S3Bucket
	c.S3Region = f.S3Region
	c.S3BaseEndpoint = f.S3BaseEndpoint
}

// parseFile overlays values from the file named by -c/-config onto config.
// Keys absent from the file keep their current values. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON.
// An unreadable or malformed file panics, like a malformed flag.
func parseFile(config *Config) {
	path := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := fileConfigFrom(config)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}
