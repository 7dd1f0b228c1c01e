// Package config loads gatesketch settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/gatesketch/config.toml (falling back to
// ~/.config/gatesketch/config.toml) unless a path is given explicitly.
// Every key is optional; missing keys keep their [Default] value and
// command-line flags override whatever the file sets.
//
//	formats = ["svg", "png"]
//	style = "dark"
//	labels = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//	history = 1000
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
	"github.com/matzehuels/gatesketch/pkg/store"
)

const (
	appName  = "gatesketch"
	fileName = "config.toml"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds every setting the CLI and server read from disk.
type Config struct {
	Formats       []string `toml:"formats"`
	Style         string   `toml:"style"`
	VizType       string   `toml:"viz_type"`
	Scale         float64  `toml:"scale"`
	Center        bool     `toml:"center"`
	Labels        bool     `toml:"labels"`
	GroupProducts bool     `toml:"group_products"`
	PNGEngine     string   `toml:"png_engine"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the layout and artifact cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// ServerConfig configures `gatesketch serve`. An empty MongoURI keeps the
// render history in memory.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
	History  int    `toml:"history"` // renders kept when no mongo_uri is set
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Formats:   []string{pipeline.FormatSVG},
		Style:     pipeline.DefaultStyle,
		VizType:   pipeline.DefaultVizType,
		Scale:     pipeline.DefaultScale,
		PNGEngine: pipeline.DefaultPNGEngine,
		Cache: CacheConfig{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:    ":8080",
			MongoDB: appName,
			History: store.DefaultMaxRecords,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// CacheDir returns the default file cache directory (~/.cache/gatesketch).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means the default location, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput,
			"config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value against the supported sets.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(c.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateVizType(c.VizType); err != nil {
		return err
	}
	if err := pipeline.ValidatePNGEngine(c.PNGEngine); err != nil {
		return err
	}
	if c.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", c.Scale)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Server.MongoURI != "" && c.Server.MongoDB == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.mongo_db is required with server.mongo_uri")
	}
	if c.Server.History < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "server.history must be at least 1, got %d", c.Server.History)
	}
	return nil
}

// Options returns pipeline options seeded from the config. Callers fill in
// the expression and apply flag overrides.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Formats:       append([]string(nil), c.Formats...),
		Style:         c.Style,
		VizType:       c.VizType,
		Scale:         c.Scale,
		Center:        c.Center,
		Labels:        c.Labels,
		GroupProducts: c.GroupProducts,
		PNGEngine:     c.PNGEngine,
	}
}
