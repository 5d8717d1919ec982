//go:build !linux

package mpris

import (
	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/spotify"
)

// PlaybackSource exposes the cached playback context.
type PlaybackSource interface {
	PlaybackContext() *spotify.PlaybackContext
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ PlaybackSource, _ event.Sender) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
