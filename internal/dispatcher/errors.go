package dispatcher

import (
	"errors"

	"github.com/llehouerou/spotwave/internal/auth"
	"github.com/llehouerou/spotwave/internal/spotify"
)

// PreconditionError reports that state an event depends on is absent.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

var (
	ErrNoPlayback = &PreconditionError{Reason: "no active playback context"}
	ErrNoPlaylist = &PreconditionError{Reason: "no current playlist"}
)

// Kind groups handler errors for logging.
type Kind int

const (
	KindOther Kind = iota
	KindAuth
	KindRemote
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRemote:
		return "remote"
	case KindPrecondition:
		return "precondition"
	case KindOther:
		return "other"
	}
	return "other"
}

// Classify returns the kind of err.
func Classify(err error) Kind {
	var pre *PreconditionError
	var remote *spotify.RemoteError
	switch {
	case errors.Is(err, auth.ErrAuthFailure):
		return KindAuth
	case errors.As(err, &pre):
		return KindPrecondition
	case errors.As(err, &remote):
		return KindRemote
	default:
		return KindOther
	}
}
