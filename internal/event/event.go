// Package event defines the values consumed by the dispatcher.
package event

import (
	"go.uber.org/zap"

	"github.com/llehouerou/spotwave/internal/spotify"
)

// Event is one of the types declared in this package.
type Event interface {
	String() string
	isEvent()
}

type (
	// RefreshToken renews the access token.
	RefreshToken struct{}
	// GetCurrentPlaybackContext fetches what is playing now.
	GetCurrentPlaybackContext struct{}
	// NextSong skips forward.
	NextSong struct{}
	// PreviousSong skips back.
	PreviousSong struct{}
	// ResumePause toggles playback.
	ResumePause struct{}
	// Shuffle toggles shuffle.
	Shuffle struct{}
	// Repeat advances the repeat mode.
	Repeat struct{}
	// SetRepeat sets the repeat mode to State.
	SetRepeat struct{ State spotify.RepeatState }
	// Quit ends the session.
	Quit struct{}
	// GetPlaylist loads a playlist and makes it current.
	GetPlaylist struct{ ID string }
	// GetCurrentPlaylistTracks drains every page of the current playlist.
	GetCurrentPlaylistTracks struct{}
	// GetUserPlaylists loads the user's playlists.
	GetUserPlaylists struct{}
	// GetDevices loads the devices playback can move to.
	GetDevices struct{}
	// TransferPlayback moves playback to another device.
	TransferPlayback struct{ DeviceID string }
	// PlayTrack starts the context at ContextURI from TrackURI.
	PlayTrack struct {
		ContextURI string
		TrackURI   string
	}
)

func (RefreshToken) isEvent()              {}
func (GetCurrentPlaybackContext) isEvent() {}
func (NextSong) isEvent()                  {}
func (PreviousSong) isEvent()              {}
func (ResumePause) isEvent()               {}
func (Shuffle) isEvent()                   {}
func (Repeat) isEvent()                    {}
func (SetRepeat) isEvent()                 {}
func (Quit) isEvent()                      {}
func (GetPlaylist) isEvent()               {}
func (GetCurrentPlaylistTracks) isEvent()  {}
func (GetUserPlaylists) isEvent()          {}
func (GetDevices) isEvent()                {}
func (TransferPlayback) isEvent()          {}
func (PlayTrack) isEvent()                 {}

func (RefreshToken) String() string              { return "refresh_token" }
func (GetCurrentPlaybackContext) String() string { return "get_current_playback_context" }
func (NextSong) String() string                  { return "next_song" }
func (PreviousSong) String() string              { return "previous_song" }
func (ResumePause) String() string               { return "resume_pause" }
func (Shuffle) String() string                   { return "shuffle" }
func (Repeat) String() string                    { return "repeat" }
func (e SetRepeat) String() string               { return "set_repeat(" + e.State.String() + ")" }
func (Quit) String() string                      { return "quit" }
func (e GetPlaylist) String() string             { return "get_playlist(" + e.ID + ")" }
func (GetCurrentPlaylistTracks) String() string  { return "get_current_playlist_tracks" }
func (GetUserPlaylists) String() string          { return "get_user_playlists" }
func (GetDevices) String() string                { return "get_devices" }
func (e TransferPlayback) String() string        { return "transfer_playback(" + e.DeviceID + ")" }
func (e PlayTrack) String() string               { return "play_track(" + e.ContextURI + ", " + e.TrackURI + ")" }

// ChangesPlayback reports whether e alters what the service is playing, so
// the cached playback context should be fetched again once it succeeds.
func ChangesPlayback(e Event) bool {
	switch e.(type) {
	case NextSong, PreviousSong, ResumePause, Shuffle, Repeat, SetRepeat,
		TransferPlayback, PlayTrack:
		return true
	}
	return false
}

// Sender delivers events to the dispatcher loop.
type Sender interface {
	Send(e Event)
}

// Chan is a Sender backed by a channel. Send drops the event when the
// channel is full so callers on the UI goroutine never block.
type Chan chan Event

// Send implements Sender.
func (c Chan) Send(e Event) {
	c.TrySend(e)
}

// TrySend queues e and reports false if the channel was full.
func (c Chan) TrySend(e Event) bool {
	select {
	case c <- e:
		return true
	default:
		return false
	}
}

// Queue is a Chan that logs the events it drops.
type Queue struct {
	C      Chan
	logger *zap.Logger
}

// NewQueue creates a queue buffering up to size events.
func NewQueue(size int, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{C: make(Chan, size), logger: logger}
}

// Send implements Sender.
func (q *Queue) Send(e Event) {
	if !q.C.TrySend(e) {
		q.logger.Warn("event dropped, queue full",
			zap.Stringer("event", e),
			zap.Int("capacity", cap(q.C)),
		)
	}
}
