package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/spotwave/internal/spotify"
)

// PlaybackSource exposes the cached playback context.
type PlaybackSource interface {
	PlaybackContext() *spotify.PlaybackContext
}

// TrackWatcher notifies when the playing track changes. Each notification
// replaces the previous one.
type TrackWatcher struct {
	source   PlaybackSource
	notifier Notifier
	logger   *zap.Logger

	lastID   string
	notifyID uint32
}

// NewTrackWatcher creates a watcher reading from source.
func NewTrackWatcher(source PlaybackSource, notifier Notifier, logger *zap.Logger) *TrackWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackWatcher{source: source, notifier: notifier, logger: logger}
}

// Run checks the source every interval until ctx is done.
func (w *TrackWatcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check sends a notification if the track differs from the last one seen.
// The first track seen is recorded without notifying.
func (w *TrackWatcher) Check() {
	pc := w.source.PlaybackContext()
	if pc == nil || pc.Item == nil || pc.Item.ID == "" {
		return
	}
	if pc.Item.ID == w.lastID {
		return
	}
	first := w.lastID == ""
	w.lastID = pc.Item.ID
	if first {
		return
	}

	id, err := w.notifier.Notify(Notification{
		Title:      pc.Item.Name,
		Body:       trackBody(pc.Item),
		Icon:       "audio-x-generic",
		Timeout:    5000,
		ReplacesID: w.notifyID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		w.logger.Debug("notification failed", zap.Error(err))
		return
	}
	w.notifyID = id
}

func trackBody(t *spotify.Track) string {
	artists := t.ArtistNames()
	switch {
	case artists == "":
		return t.Album
	case t.Album == "":
		return artists
	}
	return artists + " - " + t.Album
}
