package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/llehouerou/spotwave/internal/auth"
)

// RemoteError is the single error type returned by Client operations.
type RemoteError struct {
	Op      string
	Message string
	Status  int // HTTP status, zero for transport failures
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// normalize converts whatever the API library returned into a RemoteError.
// Auth failures raised by the transport are passed through wrapped.
func normalize(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, auth.ErrAuthFailure) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "request failed"
		}
		return &RemoteError{Op: op, Message: msg, Status: apiErr.Status}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &RemoteError{Op: op, Message: transportMessage(urlErr.Err)}
	}

	return &RemoteError{Op: op, Message: err.Error()}
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		return err.Error()
	}
}
