package dispatcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/state"
)

// DefaultFollowUpDelay is how long the loop waits after a playback control
// before fetching the playback context again.
const DefaultFollowUpDelay = 300 * time.Millisecond

// Handler processes a single event.
type Handler interface {
	Handle(ctx context.Context, e event.Event) error
}

// Loop runs each incoming event on its own goroutine and reports failures.
type Loop struct {
	handler       Handler
	store         *state.Store
	logger        *zap.Logger
	followUpDelay time.Duration

	wg sync.WaitGroup
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFollowUpDelay overrides DefaultFollowUpDelay. A negative delay
// disables the follow-up fetch.
func WithFollowUpDelay(d time.Duration) LoopOption {
	return func(l *Loop) { l.followUpDelay = d }
}

// NewLoop creates a loop. Failures are logged to logger and recorded in store.
func NewLoop(h Handler, store *state.Store, logger *zap.Logger, opts ...LoopOption) *Loop {
	l := &Loop{
		handler:       h,
		store:         store,
		logger:        logger,
		followUpDelay: DefaultFollowUpDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run consumes events until ctx is done, events is closed or a Quit event
// has been handled. It returns once every in-flight event has finished.
func (l *Loop) Run(ctx context.Context, events <-chan event.Event) error {
	defer l.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if _, quit := e.(event.Quit); quit {
				l.handle(ctx, e)
				return nil
			}
			l.wg.Add(1)
			go func() {
				defer l.wg.Done()
				l.handle(ctx, e)
			}()
		}
	}
}

func (l *Loop) handle(ctx context.Context, e event.Event) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event handler panicked", zap.Stringer("event", e), zap.Any("panic", r))
		}
	}()

	if err := l.handler.Handle(ctx, e); err != nil {
		l.report(e, err)
		return
	}
	l.logger.Debug("event handled", zap.Stringer("event", e))

	if !event.ChangesPlayback(e) || l.followUpDelay < 0 {
		return
	}
	timer := time.NewTimer(l.followUpDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	follow := event.GetCurrentPlaybackContext{}
	if err := l.handler.Handle(ctx, follow); err != nil {
		l.report(follow, err)
	}
}

func (l *Loop) report(e event.Event, err error) {
	l.logger.Warn("event failed",
		zap.Stringer("event", e),
		zap.Stringer("kind", Classify(err)),
		zap.Error(err),
	)
	if l.store != nil {
		l.store.RecordError(e, err)
	}
}
