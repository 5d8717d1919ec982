package dispatcher

import (
	"context"
	"time"

	"github.com/llehouerou/spotwave/internal/event"
)

const defaultPollInterval = 5 * time.Second

// Expirer reports how long the current session remains usable.
type Expirer interface {
	ExpiresIn() time.Duration
}

// StartPoller launches a background goroutine that asks for the playback
// context at a fixed cadence, and for a token refresh when the session
// would expire before the next tick. It returns immediately.
func StartPoller(ctx context.Context, sender event.Sender, session Expirer, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			poll(sender, session, interval)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func poll(sender event.Sender, session Expirer, interval time.Duration) {
	if session != nil && session.ExpiresIn() <= interval {
		sender.Send(event.RefreshToken{})
	}
	sender.Send(event.GetCurrentPlaybackContext{})
}
