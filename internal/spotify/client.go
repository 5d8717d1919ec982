// Package spotify adapts the remote music service API to the domain types
// used by the dispatcher.
package spotify

import (
	"context"
	"errors"
	"net/http"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"
)

const defaultTimeout = 10 * time.Second

type options struct {
	baseURL   string
	timeout   time.Duration
	retry     bool
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another API root. It must end with a slash.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout bounds every request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetry enables the library's automatic retry on rate limiting.
func WithRetry(retry bool) Option {
	return func(o *options) { o.retry = retry }
}

// WithTransport sets the round tripper beneath the bearer transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// Client issues authenticated calls against the remote service.
type Client struct {
	api *spotifyapi.Client
}

// New creates a client that authorizes requests with tokens.
func New(tokens TokenProvider, opts ...Option) *Client {
	o := options{
		timeout:   defaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := &http.Client{
		Timeout:   o.timeout,
		Transport: &bearerTransport{tokens: tokens, base: o.transport},
	}

	apiOpts := []spotifyapi.ClientOption{spotifyapi.WithRetry(o.retry)}
	if o.baseURL != "" {
		apiOpts = append(apiOpts, spotifyapi.WithBaseURL(o.baseURL))
	}
	return &Client{api: spotifyapi.New(httpClient, apiOpts...)}
}

// CurrentPlayback returns the active playback, or nil when nothing is playing.
func (c *Client) CurrentPlayback(ctx context.Context) (*PlaybackContext, error) {
	ps, err := c.api.PlayerState(ctx)
	if err != nil {
		return nil, normalize("get playback", err)
	}
	return convertPlayerState(ps), nil
}

// NextTrack skips to the next track.
func (c *Client) NextTrack(ctx context.Context) error {
	return normalize("next track", c.api.Next(ctx))
}

// PreviousTrack skips to the previous track.
func (c *Client) PreviousTrack(ctx context.Context) error {
	return normalize("previous track", c.api.Previous(ctx))
}

// Resume starts or resumes playback.
func (c *Client) Resume(ctx context.Context) error {
	return normalize("resume", c.api.Play(ctx))
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context) error {
	return normalize("pause", c.api.Pause(ctx))
}

// SetShuffle sets the shuffle state to state.
func (c *Client) SetShuffle(ctx context.Context, state bool) error {
	return normalize("set shuffle", c.api.Shuffle(ctx, state))
}

// SetRepeat sets the repeat mode.
func (c *Client) SetRepeat(ctx context.Context, state RepeatState) error {
	return normalize("set repeat", c.api.Repeat(ctx, state.String()))
}

// Devices lists the devices playback can be transferred to. Restricted
// devices are left out.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	devices, err := c.api.PlayerDevices(ctx)
	if err != nil {
		return nil, normalize("get devices", err)
	}
	return convertDevices(devices), nil
}

// TransferPlayback moves playback to the device with id. When play is false
// the current playing state is kept.
func (c *Client) TransferPlayback(ctx context.Context, id string, play bool) error {
	return normalize("transfer playback", c.api.TransferPlayback(ctx, spotifyapi.ID(id), play))
}

// PlayContext starts the album or playlist at contextURI, beginning with the
// track at trackURI when it is not empty.
func (c *Client) PlayContext(ctx context.Context, contextURI, trackURI string) error {
	uri := spotifyapi.URI(contextURI)
	opt := &spotifyapi.PlayOptions{PlaybackContext: &uri}
	if trackURI != "" {
		opt.PlaybackOffset = &spotifyapi.PlaybackOffset{URI: spotifyapi.URI(trackURI)}
	}
	return normalize("play", c.api.PlayOpt(ctx, opt))
}

// Playlist fetches a playlist with its first page of tracks.
func (c *Client) Playlist(ctx context.Context, id string) (*Playlist, error) {
	p, err := c.api.GetPlaylist(ctx, spotifyapi.ID(id))
	if err != nil {
		return nil, normalize("get playlist", err)
	}
	return convertPlaylist(p), nil
}

// FullPlaylistTracks returns the seed's tracks followed by every remaining
// page, in the order the service returned them. A failed page discards
// everything collected so far.
func (c *Client) FullPlaylistTracks(ctx context.Context, seed *Playlist) ([]Track, error) {
	tracks := make([]Track, 0, max(seed.Total, len(seed.Tracks)))
	for _, t := range seed.Tracks {
		tracks = append(tracks, t.Clone())
	}

	page := &spotifyapi.PlaylistTrackPage{}
	for next := seed.Next; next != ""; next = page.Next {
		page.Next = next
		if err := c.api.NextPage(ctx, page); err != nil {
			if errors.Is(err, spotifyapi.ErrNoMorePages) {
				break
			}
			return nil, normalize("get playlist tracks", err)
		}
		tracks = append(tracks, convertPlaylistTracks(page.Tracks)...)
	}
	return tracks, nil
}

// UserPlaylists returns every playlist in the current user's library.
func (c *Client) UserPlaylists(ctx context.Context) ([]SimplePlaylist, error) {
	page, err := c.api.CurrentUsersPlaylists(ctx)
	if err != nil {
		return nil, normalize("get user playlists", err)
	}

	playlists := make([]SimplePlaylist, 0, int(page.Total))
	for {
		for _, p := range page.Playlists {
			playlists = append(playlists, convertSimplePlaylist(p))
		}
		if page.Next == "" {
			return playlists, nil
		}
		if err := c.api.NextPage(ctx, page); err != nil {
			if errors.Is(err, spotifyapi.ErrNoMorePages) {
				return playlists, nil
			}
			return nil, normalize("get user playlists", err)
		}
	}
}
