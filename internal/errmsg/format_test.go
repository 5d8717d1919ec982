//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/llehouerou/spotwave/internal/auth"
	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpNextTrack,
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error",
			op:       OpFetchPlayback,
			err:      errors.New("no active playback context"),
			expected: "Failed to fetch playback: no active playback context",
		},
		{
			name:     "remote error shows service message",
			op:       OpNextTrack,
			err:      &spotify.RemoteError{Op: "next track", Message: "Premium required", Status: 403},
			expected: "Failed to skip to next track: Premium required",
		},
		{
			name:     "wrapped auth failure",
			op:       OpRefreshToken,
			err:      fmt.Errorf("pause: %w", auth.ErrAuthFailure),
			expected: "Failed to refresh session: session expired, run with -login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("not found")
	if got := FormatWith(OpLoadPlaylist, "Road Trip", err); got != "Failed to load playlist 'Road Trip': not found" {
		t.Errorf("FormatWith() = %q", got)
	}
	if got := FormatWith(OpLoadPlaylist, "", err); got != "Failed to load playlist: not found" {
		t.Errorf("FormatWith() empty context = %q", got)
	}
	if got := FormatWith(OpLoadPlaylist, "x", nil); got != "" {
		t.Errorf("FormatWith() nil error = %q", got)
	}
}

func TestOpFor(t *testing.T) {
	tests := []struct {
		ev   event.Event
		want Op
	}{
		{event.NextSong{}, OpNextTrack},
		{event.GetPlaylist{ID: "p"}, OpLoadPlaylist},
		{event.Repeat{}, OpRepeat},
		{event.SetRepeat{State: spotify.RepeatTrack}, OpRepeat},
		{event.PlayTrack{}, OpPlayTrack},
		{event.GetDevices{}, OpLoadDevices},
		{event.TransferPlayback{DeviceID: "d"}, OpTransferDevice},
		{event.Quit{}, OpUnknownRequest},
	}
	for _, tt := range tests {
		if got := OpFor(tt.ev); got != tt.want {
			t.Errorf("OpFor(%s) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}
