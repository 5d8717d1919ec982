package keymap

// Binding ties keys to a command.
type Binding struct {
	Command     Command
	Keys        []string
	Description string
	Context     string // "global", "playback", "navigation", "sort"
}

// Default contains the built-in key bindings.
var Default = []Binding{
	// Global
	{CommandQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{CommandOpenCommandHelp, []string{"?"}, "Show help", "global"},
	{CommandClosePopup, []string{"esc"}, "Close popup", "global"},
	{CommandBack, []string{"backspace"}, "Previous page", "global"},
	{CommandSwitchPlaylist, []string{"P"}, "Switch playlist", "global"},
	{CommandSwitchDevice, []string{"D"}, "Switch device", "global"},
	{CommandSearchContextTracks, []string{"/"}, "Search tracks", "global"},

	// Playback
	{CommandResumePause, []string{" "}, "Play/pause", "playback"},
	{CommandNextTrack, []string{"n"}, "Next track", "playback"},
	{CommandPreviousTrack, []string{"p"}, "Previous track", "playback"},
	{CommandRepeat, []string{"ctrl+r"}, "Cycle repeat mode", "playback"},
	{CommandShuffle, []string{"ctrl+s"}, "Toggle shuffle", "playback"},
	{CommandRefreshPlayback, []string{"r"}, "Refresh playback", "playback"},
	{CommandPlaySelectedTrackAlbum, []string{"a"}, "Play selected track's album", "playback"},

	// Navigation
	{CommandSelectNext, []string{"j", "down"}, "Move down", "navigation"},
	{CommandSelectPrevious, []string{"k", "up"}, "Move up", "navigation"},
	{CommandChooseSelected, []string{"enter"}, "Open or play selected", "navigation"},

	// Sort
	{CommandSortByTrack, []string{"s t"}, "Sort by track", "sort"},
	{CommandSortByArtists, []string{"s a"}, "Sort by artists", "sort"},
	{CommandSortByAlbum, []string{"s A"}, "Sort by album", "sort"},
	{CommandSortByDuration, []string{"s d"}, "Sort by duration", "sort"},
	{CommandSortByAddedDate, []string{"s D"}, "Sort by added date", "sort"},
	{CommandReverseOrder, []string{"s r"}, "Reverse order", "sort"},
}

// ByContext returns key bindings filtered by context.
func ByContext(bindings []Binding, context string) []Binding {
	var result []Binding
	for _, kb := range bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
