// Package auth manages the OAuth session used for remote calls.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// ErrAuthFailure is returned when the credential exchange yields no usable token.
var ErrAuthFailure = errors.New("auth failure")

// ExpiryMargin is subtracted from the server-reported expiry so a session
// is considered expired slightly before the service rejects it.
const ExpiryMargin = 10 * time.Second

// Session is an access token together with the time it stops being usable.
type Session struct {
	Token     *oauth2.Token
	ExpiresAt time.Time
}

// Valid reports whether the session can be presented to the service at now.
func (s Session) Valid(now time.Time) bool {
	return s.Token != nil && s.Token.AccessToken != "" && now.Before(s.ExpiresAt)
}

func newSession(tok *oauth2.Token) Session {
	if tok.Expiry.IsZero() {
		return Session{Token: tok}
	}
	return Session{Token: tok, ExpiresAt: tok.Expiry.Add(-ExpiryMargin)}
}

// Refresher exchanges a refresh token for a new access token.
type Refresher interface {
	RefreshToken(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error)
}

// TokenSaver persists tokens obtained by a refresh.
type TokenSaver interface {
	Save(token *oauth2.Token) error
}

// Manager owns the current session and replaces it wholesale on refresh.
type Manager struct {
	refresher Refresher
	saver     TokenSaver
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.RWMutex
	session Session

	group singleflight.Group
}

// Option configures a Manager.
type Option func(*Manager)

// WithSaver stores every refreshed token through s.
func WithSaver(s TokenSaver) Option {
	return func(m *Manager) { m.saver = s }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a manager seeded with token, which may be nil or expired.
func NewManager(r Refresher, token *oauth2.Token, opts ...Option) *Manager {
	m := &Manager{
		refresher: r,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if token != nil {
		m.session = newSession(token)
	}
	return m
}

// Session returns the current session.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// ExpiresIn returns the time left before the session must be refreshed.
// It is zero or negative for an absent or expired session.
func (m *Manager) ExpiresIn() time.Duration {
	s := m.Session()
	if !s.Valid(m.now()) {
		return 0
	}
	return s.ExpiresAt.Sub(m.now())
}

// Refresh runs the credential exchange and installs the resulting session.
// Concurrent callers share a single exchange.
func (m *Manager) Refresh(ctx context.Context) (Session, error) {
	v, err, _ := m.group.Do("refresh", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return Session{}, err
	}
	return v.(Session), nil
}

func (m *Manager) refresh(ctx context.Context) (Session, error) {
	current := m.Session().Token
	if current == nil || current.RefreshToken == "" {
		return Session{}, fmt.Errorf("%w: no refresh token", ErrAuthFailure)
	}

	tok, err := m.refresher.RefreshToken(ctx, current)
	if err != nil {
		return Session{}, fmt.Errorf("%w: refresh token: %w", ErrAuthFailure, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return Session{}, fmt.Errorf("%w: exchange returned no token", ErrAuthFailure)
	}
	if tok.Expiry.IsZero() {
		return Session{}, fmt.Errorf("%w: token has no expiry", ErrAuthFailure)
	}

	next := *tok
	if next.RefreshToken == "" {
		next.RefreshToken = current.RefreshToken
	}
	s := newSession(&next)

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	if m.saver != nil {
		if err := m.saver.Save(&next); err != nil {
			m.logger.Warn("save refreshed token", zap.Error(err))
		}
	}
	return s, nil
}

// AccessToken returns a token that is valid now, refreshing first if the
// current session has expired.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	s := m.Session()
	if s.Valid(m.now()) {
		return s.Token.AccessToken, nil
	}
	s, err := m.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return s.Token.AccessToken, nil
}
