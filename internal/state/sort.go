package state

import (
	"cmp"
	"slices"
	"strings"

	"github.com/llehouerou/spotwave/internal/spotify"
)

// SortKey selects the field playlist tracks are ordered by.
type SortKey int

const (
	SortByName SortKey = iota
	SortByArtists
	SortByAlbum
	SortByDuration
	SortByAddedDate
)

func (k SortKey) compare(a, b spotify.Track) int {
	switch k {
	case SortByName:
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByArtists:
		return cmp.Compare(strings.ToLower(a.ArtistNames()), strings.ToLower(b.ArtistNames()))
	case SortByAlbum:
		return cmp.Compare(strings.ToLower(a.Album), strings.ToLower(b.Album))
	case SortByDuration:
		return cmp.Compare(a.Duration, b.Duration)
	case SortByAddedDate:
		return a.AddedAt.Compare(b.AddedAt)
	}
	return 0
}

// SortPlaylistTracks stably sorts the cached playlist tracks in place.
func (s *Store) SortPlaylistTracks(key SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slices.SortStableFunc(s.tracks, key.compare)
}

// ReversePlaylistTracks reverses the cached playlist tracks.
func (s *Store) ReversePlaylistTracks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	slices.Reverse(s.tracks)
}
