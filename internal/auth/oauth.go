package auth

import (
	"context"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// Scopes requested at login.
var Scopes = []string{
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopePlaylistReadCollaborative,
}

// Credentials identify the registered application.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewOAuthConfig builds the oauth2 configuration for the service accounts endpoint.
func NewOAuthConfig(c Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyauth.AuthURL,
			TokenURL: spotifyauth.TokenURL,
		},
	}
}

// OAuthRefresher refreshes tokens with a refresh-token grant.
type OAuthRefresher struct {
	Config *oauth2.Config
}

// RefreshToken always performs the grant, even when token is still valid.
func (r OAuthRefresher) RefreshToken(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	// An empty access token makes the token source skip its reuse check.
	stale := &oauth2.Token{RefreshToken: token.RefreshToken}
	return r.Config.TokenSource(ctx, stale).Token()
}
