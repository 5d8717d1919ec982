// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/spotwave/internal/auth"
	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Session
	OpLogin        Op = "log in"
	OpRefreshToken Op = "refresh session"

	// Playback
	OpFetchPlayback Op = "fetch playback"
	OpNextTrack     Op = "skip to next track"
	OpPreviousTrack Op = "skip to previous track"
	OpResumePause   Op = "toggle playback"
	OpShuffle       Op = "toggle shuffle"
	OpRepeat        Op = "change repeat mode"
	OpPlayTrack     Op = "play track"

	// Devices
	OpLoadDevices    Op = "load devices"
	OpTransferDevice Op = "switch device"

	// Playlists
	OpLoadPlaylist   Op = "load playlist"
	OpLoadTracks     Op = "load playlist tracks"
	OpLoadPlaylists  Op = "load playlists"
	OpUnknownRequest Op = "handle request"

	// Initialization
	OpInitialize Op = "initialize application"
)

// OpFor returns the operation an event performs.
func OpFor(e event.Event) Op {
	switch e.(type) {
	case event.RefreshToken:
		return OpRefreshToken
	case event.GetCurrentPlaybackContext:
		return OpFetchPlayback
	case event.NextSong:
		return OpNextTrack
	case event.PreviousSong:
		return OpPreviousTrack
	case event.ResumePause:
		return OpResumePause
	case event.Shuffle:
		return OpShuffle
	case event.Repeat, event.SetRepeat:
		return OpRepeat
	case event.PlayTrack:
		return OpPlayTrack
	case event.GetDevices:
		return OpLoadDevices
	case event.TransferPlayback:
		return OpTransferDevice
	case event.GetPlaylist:
		return OpLoadPlaylist
	case event.GetCurrentPlaylistTracks:
		return OpLoadTracks
	case event.GetUserPlaylists:
		return OpLoadPlaylists
	}
	return OpUnknownRequest
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %s", op, describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, context, describe(err))
}

// describe drops the operation prefix of remote errors and replaces auth
// failures with a hint the user can act on.
func describe(err error) string {
	if errors.Is(err, auth.ErrAuthFailure) {
		return "session expired, run with -login"
	}
	var remote *spotify.RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	return err.Error()
}
