package spotify

import (
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"
)

func convertPlayerState(ps *spotifyapi.PlayerState) *PlaybackContext {
	// A 204 from the player endpoint decodes into a zero state.
	if ps == nil || (ps.Device.ID == "" && ps.Item == nil) {
		return nil
	}
	pc := &PlaybackContext{
		IsPlaying:    ps.Playing,
		ShuffleState: ps.ShuffleState,
		RepeatState:  ParseRepeatState(ps.RepeatState),
		Device: Device{
			ID:     string(ps.Device.ID),
			Name:   ps.Device.Name,
			Type:   ps.Device.Type,
			Volume: int(ps.Device.Volume),
			Active: ps.Device.Active,
		},
		Context: PlayingContext{
			Type: ps.PlaybackContext.Type,
			URI:  string(ps.PlaybackContext.URI),
		},
		Progress: time.Duration(ps.Progress) * time.Millisecond,
	}
	if ps.Item != nil {
		t := convertTrack(ps.Item)
		pc.Item = &t
	}
	return pc
}

func convertDevices(devices []spotifyapi.PlayerDevice) []Device {
	out := make([]Device, 0, len(devices))
	for _, d := range devices {
		if d.Restricted {
			continue
		}
		out = append(out, Device{
			ID:     string(d.ID),
			Name:   d.Name,
			Type:   d.Type,
			Volume: int(d.Volume),
			Active: d.Active,
		})
	}
	return out
}

func convertTrack(t *spotifyapi.FullTrack) Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	return Track{
		ID:       string(t.ID),
		URI:      string(t.URI),
		Name:     t.Name,
		Artists:  artists,
		Album:    t.Album.Name,
		AlbumID:  string(t.Album.ID),
		Duration: time.Duration(t.Duration) * time.Millisecond,
	}
}

func convertPlaylistTracks(items []spotifyapi.PlaylistTrack) []Track {
	tracks := make([]Track, 0, len(items))
	for i := range items {
		t := convertTrack(&items[i].Track)
		if added, err := time.Parse(time.RFC3339, items[i].AddedAt); err == nil {
			t.AddedAt = added
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func convertPlaylist(p *spotifyapi.FullPlaylist) *Playlist {
	return &Playlist{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Owner:       ownerName(p.Owner),
		Total:       int(p.Tracks.Total),
		Tracks:      convertPlaylistTracks(p.Tracks.Tracks),
		Next:        p.Tracks.Next,
	}
}

func convertSimplePlaylist(p spotifyapi.SimplePlaylist) SimplePlaylist {
	return SimplePlaylist{
		ID:    string(p.ID),
		Name:  p.Name,
		Owner: ownerName(p.Owner),
		Total: int(p.Tracks.Total),
	}
}

func ownerName(u spotifyapi.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.ID
}
