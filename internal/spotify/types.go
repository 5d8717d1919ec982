package spotify

import (
	"fmt"
	"strings"
	"time"
)

// RepeatState is the remote repeat mode.
type RepeatState int

const (
	RepeatOff RepeatState = iota
	RepeatTrack
	RepeatContext
)

// String returns the wire value expected by the service.
func (r RepeatState) String() string {
	switch r {
	case RepeatTrack:
		return "track"
	case RepeatContext:
		return "context"
	case RepeatOff:
		return "off"
	}
	return "off"
}

// Next cycles Off -> Track -> Context -> Off.
func (r RepeatState) Next() RepeatState {
	switch r {
	case RepeatOff:
		return RepeatTrack
	case RepeatTrack:
		return RepeatContext
	case RepeatContext:
		return RepeatOff
	}
	return RepeatOff
}

// ParseRepeatState maps a wire value to a RepeatState. Unknown values map to RepeatOff.
func ParseRepeatState(s string) RepeatState {
	switch s {
	case "track":
		return RepeatTrack
	case "context":
		return RepeatContext
	default:
		return RepeatOff
	}
}

// Device is the playback device reported by the service.
type Device struct {
	ID     string
	Name   string
	Type   string
	Volume int
	Active bool
}

func (d Device) String() string {
	return d.Name + " " + d.Type
}

// PlayingContext is the album, playlist or artist playback was started from.
type PlayingContext struct {
	Type string
	URI  string
}

// PlaybackContext is a snapshot of what is playing and with which settings.
type PlaybackContext struct {
	IsPlaying    bool
	ShuffleState bool
	RepeatState  RepeatState
	Device       Device
	Context      PlayingContext
	Item         *Track
	Progress     time.Duration
}

// Clone returns a deep copy.
func (p *PlaybackContext) Clone() *PlaybackContext {
	if p == nil {
		return nil
	}
	out := *p
	if p.Item != nil {
		item := p.Item.Clone()
		out.Item = &item
	}
	return &out
}

// Track is a playable item.
type Track struct {
	ID       string
	URI      string
	Name     string
	Artists  []string
	Album    string
	AlbumID  string
	Duration time.Duration
	AddedAt  time.Time
}

// Clone returns a copy that shares no slices with t.
func (t Track) Clone() Track {
	t.Artists = append([]string(nil), t.Artists...)
	return t
}

// ArtistNames joins the artists for display.
func (t Track) ArtistNames() string {
	return strings.Join(t.Artists, ", ")
}

// String is the text matched by the search filter.
func (t Track) String() string {
	return fmt.Sprintf("%s %s %s", t.Name, t.ArtistNames(), t.Album)
}

// Playlist is a playlist with the first page of its tracks.
type Playlist struct {
	ID          string
	Name        string
	Description string
	Owner       string
	Total       int
	Tracks      []Track
	// Next is the absolute URL of the second page, empty when Tracks is complete.
	Next string
}

func (p Playlist) String() string {
	return fmt.Sprintf("%s %s", p.Name, p.Owner)
}

// SimplePlaylist is a playlist entry in the user's library.
type SimplePlaylist struct {
	ID    string
	Name  string
	Owner string
	Total int
}

func (p SimplePlaylist) String() string {
	return fmt.Sprintf("%s %s", p.Name, p.Owner)
}

// PlaylistURI returns the playback context URI of a playlist.
func PlaylistURI(id string) string {
	return "spotify:playlist:" + id
}

// AlbumURI returns the playback context URI of an album.
func AlbumURI(id string) string {
	return "spotify:album:" + id
}
