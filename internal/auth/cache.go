package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned by Cache.Load when no token has been saved yet.
var ErrNoToken = errors.New("no cached token")

const filePermission = 0o600

// Cache stores the last token on disk so a login survives restarts.
type Cache struct {
	path string
}

// NewCache returns a cache backed by the file at path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// DefaultCachePath returns the token file location under the XDG cache dir.
func DefaultCachePath() (string, error) {
	return xdg.CacheFile(filepath.Join("spotwave", "token.json"))
}

// Path returns the backing file.
func (c *Cache) Path() string {
	return c.path
}

// Load reads the cached token.
func (c *Cache) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("read token cache: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token cache: %w", err)
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, ErrNoToken
	}
	return &tok, nil
}

// Save writes token atomically with owner-only permissions.
func (c *Cache) Save(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, filePermission); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace token cache: %w", err)
	}
	return nil
}
