//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/.cache/token.json",
			expected: filepath.Join(home, ".cache", "token.json"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/log/spotwave.log",
			expected: "/var/log/spotwave.log",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/spotwave.log",
			expected: "logs/spotwave.log",
		},
		{
			name:     "empty path unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, `
[spotify]
client_id = "abc"
client_secret = "shh"
timeout = "3s"
retry = true

[search]
fuzzy = true

[playback]
poll_interval = "2s"
notifications = true
mpris = false

[log]
level = " DEBUG "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Spotify.ClientID != "abc" || cfg.Spotify.ClientSecret != "shh" {
		t.Errorf("credentials = %+v", cfg.Spotify)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v, want 3s", cfg.Timeout())
	}
	if !cfg.Spotify.Retry || !cfg.Search.Fuzzy || !cfg.Playback.Notifications {
		t.Errorf("bool settings not loaded: %+v", cfg)
	}
	if cfg.PollInterval() != 2*time.Second {
		t.Errorf("PollInterval() = %v, want 2s", cfg.PollInterval())
	}
	if cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() = true, want false")
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("LogLevel() = %q, want debug", cfg.LogLevel())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[spotify\nclient_id = ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.RedirectURL() != DefaultRedirectURL {
		t.Errorf("RedirectURL() = %q", cfg.RedirectURL())
	}
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.PollInterval() != DefaultPollInterval {
		t.Errorf("PollInterval() = %v", cfg.PollInterval())
	}
	if !cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() default should be true")
	}
	if cfg.LogLevel() != DefaultLogLevel {
		t.Errorf("LogLevel() = %q", cfg.LogLevel())
	}
	if !errors.Is(cfg.Validate(), ErrMissingCredentials) {
		t.Errorf("Validate() = %v, want ErrMissingCredentials", cfg.Validate())
	}
}

func TestPathsOverride(t *testing.T) {
	cfg := &Config{
		Spotify: SpotifyConfig{TokenCache: "/tmp/tok.json"},
		Log:     LogConfig{File: "/tmp/s.log"},
	}
	if cfg.Spotify.TokenCache != "/tmp/tok.json" {
		t.Errorf("TokenCache = %q", cfg.Spotify.TokenCache)
	}
	if p, err := cfg.LogFilePath(); err != nil || p != "/tmp/s.log" {
		t.Errorf("LogFilePath() = %q, %v", p, err)
	}
}
