package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "token.json")
	c := NewCache(path)

	if _, err := c.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load() on missing file error = %v, want ErrNoToken", err)
	}

	expiry := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := c.Save(&oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: expiry}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != filePermission {
		t.Errorf("permissions = %o, want %o", perm, filePermission)
	}

	tok, err := c.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tok.RefreshToken != "r" || !tok.Expiry.Equal(expiry) {
		t.Errorf("Load() = %+v", tok)
	}
}

func TestCache_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCache(path).Load(); err == nil || errors.Is(err, ErrNoToken) {
		t.Errorf("Load() error = %v, want decode error", err)
	}
}
