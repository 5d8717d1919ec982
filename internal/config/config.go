package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "spotwave"

// Defaults applied by the getters below.
const (
	DefaultRedirectURL  = "http://127.0.0.1:8989/callback"
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 5 * time.Second
	DefaultLogLevel     = "info"
)

// ErrMissingCredentials is returned by Validate when no client id is set.
var ErrMissingCredentials = errors.New("spotify.client_id is not set")

type Config struct {
	Spotify  SpotifyConfig  `koanf:"spotify"`
	Search   SearchConfig   `koanf:"search"`
	Playback PlaybackConfig `koanf:"playback"`
	Log      LogConfig      `koanf:"log"`
}

// SpotifyConfig holds the registered application credentials and HTTP settings.
type SpotifyConfig struct {
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	RedirectURL  string        `koanf:"redirect_url"` // must match the app registration
	Timeout      time.Duration `koanf:"timeout"`      // per request (default: 10s)
	Retry        bool          `koanf:"retry"`        // retry on rate limiting
	TokenCache   string        `koanf:"token_cache"`  // default: $XDG_CACHE_HOME/spotwave/token.json
}

// SearchConfig selects the search matcher.
type SearchConfig struct {
	Fuzzy bool `koanf:"fuzzy"` // subsequence matching instead of word matching
}

// PlaybackConfig holds polling and desktop integration settings.
type PlaybackConfig struct {
	PollInterval  time.Duration `koanf:"poll_interval"` // default: 5s
	Notifications bool          `koanf:"notifications"` // notify on track change
	MPRIS         *bool         `koanf:"mpris"`         // media key integration (default: true)
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/spotwave/spotwave.log
}

// Load reads the config files. When explicit is set only that file is
// read and it must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	paths := getConfigPaths()
	if explicit != "" {
		paths = []string{expandPath(explicit)}
		if _, err := os.Stat(paths[0]); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	// Later files override earlier ones.
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Spotify.TokenCache = expandPath(cfg.Spotify.TokenCache)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/spotwave/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate reports settings without which the client cannot start.
func (c *Config) Validate() error {
	if c.Spotify.ClientID == "" {
		return ErrMissingCredentials
	}
	return nil
}

// RedirectURL returns the OAuth redirect URL with its default applied.
func (c *Config) RedirectURL() string {
	if c.Spotify.RedirectURL == "" {
		return DefaultRedirectURL
	}
	return c.Spotify.RedirectURL
}

// Timeout returns the request timeout with its default applied.
func (c *Config) Timeout() time.Duration {
	if c.Spotify.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Spotify.Timeout
}

// PollInterval returns the playback poll interval with its default applied.
func (c *Config) PollInterval() time.Duration {
	if c.Playback.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.Playback.PollInterval
}

// MPRISEnabled reports whether media key integration is on (default: true).
func (c *Config) MPRISEnabled() bool {
	return c.Playback.MPRIS == nil || *c.Playback.MPRIS
}

// LogLevel returns the log level with its default applied.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return DefaultLogLevel
	}
	return c.Log.Level
}

// LogFilePath returns the log file, defaulting to the XDG state dir.
func (c *Config) LogFilePath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}
