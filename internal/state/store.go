// Package state holds the application state shared by event handlers.
package state

import (
	"sync"
	"time"

	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
)

// Snapshot is a copy of the store taken under a single read lock.
type Snapshot struct {
	Playback       *spotify.PlaybackContext
	Playlist       *spotify.Playlist
	PlaylistTracks []spotify.Track
	TracksFor      string // playlist ID PlaylistTracks were drained from
	Playlists      []spotify.SimplePlaylist
	Devices        []spotify.Device
	Running        bool
	LastError      error
	LastFailed     event.Event // event that produced LastError
	LastUpdated    time.Time
}

// Store guards the shared state with a single RWMutex. Every method copies
// in or out, and none performs I/O while holding the lock.
// The zero value is an empty, running store.
type Store struct {
	mu sync.RWMutex

	playback       *spotify.PlaybackContext
	playbackIssued uint64
	playbackSeq    uint64

	playlist       *spotify.Playlist
	playlistIssued uint64
	playlistSeq    uint64
	tracks         []spotify.Track
	tracksPlaylist string
	playlists      []spotify.SimplePlaylist
	devices        []spotify.Device

	stopped    bool
	lastErr    error
	lastFailed event.Event
	updated    time.Time
}

// New returns an empty, running store.
func New() *Store {
	return &Store{}
}

// PlaybackContext returns the last fetched playback, or nil if none.
func (s *Store) PlaybackContext() *spotify.PlaybackContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playback.Clone()
}

// BeginPlaybackFetch issues a ticket to be passed to SetPlaybackContext
// once the fetch it was taken for completes.
func (s *Store) BeginPlaybackFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playbackIssued++
	return s.playbackIssued
}

// SetPlaybackContext stores pc unless a fetch that started later has already
// been committed. It reports whether pc was stored. A nil pc clears the playback.
func (s *Store) SetPlaybackContext(ticket uint64, pc *spotify.PlaybackContext) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.playbackSeq {
		return false
	}
	s.playbackSeq = ticket
	s.playback = pc.Clone()
	s.touch()
	return true
}

// CurrentPlaylist returns the selected playlist, or nil.
func (s *Store) CurrentPlaylist() *spotify.Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlaylist(s.playlist)
}

// SetCurrentPlaylist replaces the selected playlist. Fetches begun before
// the call can no longer commit.
func (s *Store) SetCurrentPlaylist(p *spotify.Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlistSeq = s.playlistIssued
	s.playlist = clonePlaylist(p)
	s.touch()
}

// BeginPlaylistFetch issues a ticket to be passed to CommitPlaylist once
// the playlist request it was taken for completes.
func (s *Store) BeginPlaylistFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlistIssued++
	return s.playlistIssued
}

// CommitPlaylist makes p current unless a playlist requested later has
// already been committed. It reports whether p was stored.
func (s *Store) CommitPlaylist(ticket uint64, p *spotify.Playlist) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.playlistSeq {
		return false
	}
	s.playlistSeq = ticket
	s.playlist = clonePlaylist(p)
	s.touch()
	return true
}

// PlaylistTracks returns the drained tracks of the current playlist.
func (s *Store) PlaylistTracks() []spotify.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTracks(s.tracks)
}

// SetPlaylistTracks stores tracks drained from playlistID. Tracks for a
// playlist that is no longer current are dropped and false is returned.
func (s *Store) SetPlaylistTracks(playlistID string, tracks []spotify.Track) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playlist == nil || s.playlist.ID != playlistID {
		return false
	}
	s.tracks = cloneTracks(tracks)
	s.tracksPlaylist = playlistID
	s.touch()
	return true
}

// Playlists returns the user's playlists.
func (s *Store) Playlists() []spotify.SimplePlaylist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlaylists(s.playlists)
}

// SetPlaylists replaces the user's playlists.
func (s *Store) SetPlaylists(p []spotify.SimplePlaylist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists = clonePlaylists(p)
	s.touch()
}

// Devices returns the last fetched device list.
func (s *Store) Devices() []spotify.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDevices(s.devices)
}

// SetDevices replaces the device list.
func (s *Store) SetDevices(d []spotify.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices = cloneDevices(d)
	s.touch()
}

// IsRunning reports whether Quit has not been called.
func (s *Store) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.stopped
}

// Quit marks the session as finished. There is no way back.
func (s *Store) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// RecordError keeps the failure of e for display until the next
// successful write.
func (s *Store) RecordError(e event.Event, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.lastFailed = e
	s.updated = time.Now()
}

// Snapshot returns a copy of every field.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Playback:       s.playback.Clone(),
		Playlist:       clonePlaylist(s.playlist),
		PlaylistTracks: cloneTracks(s.tracks),
		TracksFor:      s.tracksPlaylist,
		Playlists:      clonePlaylists(s.playlists),
		Devices:        cloneDevices(s.devices),
		Running:        !s.stopped,
		LastError:      s.lastErr,
		LastFailed:     s.lastFailed,
		LastUpdated:    s.updated,
	}
}

// touch must be called with the write lock held.
func (s *Store) touch() {
	s.lastErr = nil
	s.lastFailed = nil
	s.updated = time.Now()
}

func clonePlaylist(p *spotify.Playlist) *spotify.Playlist {
	if p == nil {
		return nil
	}
	out := *p
	out.Tracks = cloneTracks(p.Tracks)
	return &out
}

func cloneTracks(tracks []spotify.Track) []spotify.Track {
	if tracks == nil {
		return nil
	}
	out := make([]spotify.Track, len(tracks))
	for i, t := range tracks {
		out[i] = t.Clone()
	}
	return out
}

func clonePlaylists(p []spotify.SimplePlaylist) []spotify.SimplePlaylist {
	if p == nil {
		return nil
	}
	out := make([]spotify.SimplePlaylist, len(p))
	copy(out, p)
	return out
}

func cloneDevices(d []spotify.Device) []spotify.Device {
	if d == nil {
		return nil
	}
	out := make([]spotify.Device, len(d))
	copy(out, d)
	return out
}
