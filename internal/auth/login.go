package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"
)

// BrowserOpener shows the authorization page to the user.
type BrowserOpener func(url string) error

// Login runs the authorization code flow and returns the issued token.
func Login(ctx context.Context, conf *oauth2.Config, open BrowserOpener) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	cs, err := StartCallbackServer(conf.RedirectURL, state)
	if err != nil {
		return nil, err
	}
	defer cs.Shutdown()

	if err := open(conf.AuthCodeURL(state)); err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}

	code, err := cs.Wait(ctx)
	if err != nil {
		return nil, err
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %w", ErrAuthFailure, err)
	}
	return tok, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
