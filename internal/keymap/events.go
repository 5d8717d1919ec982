package keymap

import "github.com/llehouerou/spotwave/internal/event"

// EventFor returns the dispatcher event a command triggers directly.
// Commands that only change UI state report false.
func EventFor(cmd Command) (event.Event, bool) {
	switch cmd {
	case CommandNextTrack:
		return event.NextSong{}, true
	case CommandPreviousTrack:
		return event.PreviousSong{}, true
	case CommandResumePause:
		return event.ResumePause{}, true
	case CommandRepeat:
		return event.Repeat{}, true
	case CommandShuffle:
		return event.Shuffle{}, true
	case CommandQuit:
		return event.Quit{}, true
	case CommandRefreshPlayback:
		return event.GetCurrentPlaybackContext{}, true
	}
	return nil, false
}
