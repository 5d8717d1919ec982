package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func freeRedirectURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	return fmt.Sprintf("http://127.0.0.1:%d/callback", port)
}

func tokenServer(t *testing.T, wantCode string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("code"); got != wantCode {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access",
			"refresh_token": "refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(tokenURL, redirect string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  redirect,
		Endpoint:     oauth2.Endpoint{AuthURL: "https://accounts.example/authorize", TokenURL: tokenURL},
	}
}

// redirectingOpener plays the part of the browser: it follows the
// authorization URL straight back to the callback with the given code.
func redirectingOpener(t *testing.T, code string, tamper bool) BrowserOpener {
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		if err != nil {
			return err
		}
		q := u.Query()
		state := q.Get("state")
		if tamper {
			state = "forged"
		}
		cb := q.Get("redirect_uri") + "?" + url.Values{"code": {code}, "state": {state}}.Encode()
		go func() {
			resp, err := http.Get(cb) //nolint:noctx // test helper
			if err != nil {
				t.Errorf("callback: %v", err)
				return
			}
			_ = resp.Body.Close()
		}()
		return nil
	}
}

func TestLogin_ExchangesCode(t *testing.T) {
	srv := tokenServer(t, "the-code")
	conf := testConfig(srv.URL, freeRedirectURL(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tok, err := Login(ctx, conf, redirectingOpener(t, "the-code", false))
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if tok.AccessToken != "access" || tok.RefreshToken != "refresh" {
		t.Errorf("token = %+v", tok)
	}
	if tok.Expiry.IsZero() {
		t.Error("expiry not set")
	}
}

func TestLogin_RejectsStateMismatch(t *testing.T) {
	srv := tokenServer(t, "the-code")
	conf := testConfig(srv.URL, freeRedirectURL(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Login(ctx, conf, redirectingOpener(t, "the-code", true))
	if !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("Login() error = %v, want ErrStateMismatch", err)
	}
}

func TestLogin_OpenerFailure(t *testing.T) {
	conf := testConfig("http://127.0.0.1:1/token", freeRedirectURL(t))
	_, err := Login(context.Background(), conf, func(string) error { return errors.New("no browser") })
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCallbackServer_ProviderError(t *testing.T) {
	cs, err := StartCallbackServer("http://127.0.0.1:0/cb", "s")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer cs.Shutdown()

	resp, err := http.Get("http://" + cs.Addr() + "/cb?error=access_denied&state=s") //nolint:noctx // test
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := cs.Wait(ctx); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("Wait() error = %v, want ErrAuthFailure", err)
	}
}
