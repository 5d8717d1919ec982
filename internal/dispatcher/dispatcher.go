// Package dispatcher turns events into remote calls and state writes.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/llehouerou/spotwave/internal/auth"
	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
	"github.com/llehouerou/spotwave/internal/state"
)

// Remote is the subset of the remote adapter used by the dispatcher.
type Remote interface {
	CurrentPlayback(ctx context.Context) (*spotify.PlaybackContext, error)
	NextTrack(ctx context.Context) error
	PreviousTrack(ctx context.Context) error
	Resume(ctx context.Context) error
	Pause(ctx context.Context) error
	SetShuffle(ctx context.Context, state bool) error
	SetRepeat(ctx context.Context, state spotify.RepeatState) error
	Playlist(ctx context.Context, id string) (*spotify.Playlist, error)
	FullPlaylistTracks(ctx context.Context, seed *spotify.Playlist) ([]spotify.Track, error)
	UserPlaylists(ctx context.Context) ([]spotify.SimplePlaylist, error)
	Devices(ctx context.Context) ([]spotify.Device, error)
	TransferPlayback(ctx context.Context, deviceID string, play bool) error
	PlayContext(ctx context.Context, contextURI, trackURI string) error
}

// SessionRefresher renews the remote session.
type SessionRefresher interface {
	Refresh(ctx context.Context) (auth.Session, error)
}

// Dispatcher handles one event at a time and is safe for concurrent use.
type Dispatcher struct {
	remote  Remote
	session SessionRefresher
	store   *state.Store
}

// New creates a dispatcher writing results into store.
func New(remote Remote, session SessionRefresher, store *state.Store) *Dispatcher {
	return &Dispatcher{remote: remote, session: session, store: store}
}

// Handle performs the action for e. State is only written when the remote
// call succeeds, and no lock is held while a call is in flight.
func (d *Dispatcher) Handle(ctx context.Context, e event.Event) error {
	switch e := e.(type) {
	case event.RefreshToken:
		_, err := d.session.Refresh(ctx)
		return err
	case event.GetCurrentPlaybackContext:
		return d.fetchPlayback(ctx)
	case event.NextSong:
		return d.remote.NextTrack(ctx)
	case event.PreviousSong:
		return d.remote.PreviousTrack(ctx)
	case event.ResumePause:
		pc := d.store.PlaybackContext()
		if pc == nil {
			return ErrNoPlayback
		}
		if pc.IsPlaying {
			return d.remote.Pause(ctx)
		}
		return d.remote.Resume(ctx)
	case event.Shuffle:
		pc := d.store.PlaybackContext()
		if pc == nil {
			return ErrNoPlayback
		}
		return d.remote.SetShuffle(ctx, !pc.ShuffleState)
	case event.Repeat:
		pc := d.store.PlaybackContext()
		if pc == nil {
			return ErrNoPlayback
		}
		return d.remote.SetRepeat(ctx, pc.RepeatState.Next())
	case event.SetRepeat:
		return d.remote.SetRepeat(ctx, e.State)
	case event.Quit:
		d.store.Quit()
		return nil
	case event.GetPlaylist:
		return d.fetchPlaylist(ctx, e.ID)
	case event.GetCurrentPlaylistTracks:
		return d.fetchPlaylistTracks(ctx)
	case event.GetUserPlaylists:
		playlists, err := d.remote.UserPlaylists(ctx)
		if err != nil {
			return err
		}
		d.store.SetPlaylists(playlists)
		return nil
	case event.GetDevices:
		devices, err := d.remote.Devices(ctx)
		if err != nil {
			return err
		}
		d.store.SetDevices(devices)
		return nil
	case event.TransferPlayback:
		// The new device keeps the current playing state.
		pc := d.store.PlaybackContext()
		return d.remote.TransferPlayback(ctx, e.DeviceID, pc != nil && pc.IsPlaying)
	case event.PlayTrack:
		return d.remote.PlayContext(ctx, e.ContextURI, e.TrackURI)
	default:
		return fmt.Errorf("unknown event %T", e)
	}
}

func (d *Dispatcher) fetchPlayback(ctx context.Context) error {
	ticket := d.store.BeginPlaybackFetch()
	pc, err := d.remote.CurrentPlayback(ctx)
	if err != nil {
		return err
	}
	d.store.SetPlaybackContext(ticket, pc)
	return nil
}

// fetchPlaylist makes playlist id current unless a playlist requested after
// it has already landed.
func (d *Dispatcher) fetchPlaylist(ctx context.Context, id string) error {
	ticket := d.store.BeginPlaylistFetch()
	p, err := d.remote.Playlist(ctx, id)
	if err != nil {
		return err
	}
	d.store.CommitPlaylist(ticket, p)
	return nil
}

func (d *Dispatcher) fetchPlaylistTracks(ctx context.Context) error {
	p := d.store.CurrentPlaylist()
	if p == nil {
		return ErrNoPlaylist
	}
	tracks, err := d.remote.FullPlaylistTracks(ctx, p)
	if err != nil {
		return err
	}
	d.store.SetPlaylistTracks(p.ID, tracks)
	return nil
}
