// Package keymap maps keys to user commands and commands to events.
package keymap

// Command is a user-triggerable action.
type Command string

const (
	// Playback
	CommandNextTrack       Command = "next_track"
	CommandPreviousTrack   Command = "previous_track"
	CommandResumePause     Command = "resume_pause"
	CommandRepeat          Command = "repeat"
	CommandShuffle         Command = "shuffle"
	CommandRefreshPlayback Command = "refresh_playback"

	CommandPlaySelectedTrackAlbum Command = "play_selected_track_album"

	// Global
	CommandQuit            Command = "quit"
	CommandOpenCommandHelp Command = "open_command_help"
	CommandClosePopup      Command = "close_popup"
	CommandBack            Command = "back"

	// Navigation
	CommandSelectNext     Command = "select_next"
	CommandSelectPrevious Command = "select_previous"
	CommandChooseSelected Command = "choose_selected"

	// Pages and popups
	CommandSwitchPlaylist      Command = "switch_playlist"
	CommandSwitchDevice        Command = "switch_device"
	CommandSearchContextTracks Command = "search_context_tracks"

	// Sorting the current playlist
	CommandSortByTrack     Command = "sort_by_track"
	CommandSortByArtists   Command = "sort_by_artists"
	CommandSortByAlbum     Command = "sort_by_album"
	CommandSortByDuration  Command = "sort_by_duration"
	CommandSortByAddedDate Command = "sort_by_added_date"
	CommandReverseOrder    Command = "reverse_order"
)
