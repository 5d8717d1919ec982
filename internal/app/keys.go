package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/keymap"
	"github.com/llehouerou/spotwave/internal/spotify"
	"github.com/llehouerou/spotwave/internal/state"
	uistate "github.com/llehouerou/spotwave/internal/ui/state"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.search.Focused() {
		if cmd, handled := m.handleSearchKey(msg); handled {
			return m, cmd
		}
	}

	if m.pendingKey != "" {
		seq := m.pendingKey + " " + key
		m.pendingKey = ""
		if cmd := m.keys.Resolve(seq); cmd != "" {
			return m.runCommand(cmd)
		}
	}
	if m.keys.IsPrefix(key) {
		m.pendingKey = key
		return m, nil
	}

	cmd := m.keys.Resolve(key)
	if cmd == "" {
		return m, nil
	}
	return m.runCommand(cmd)
}

// handleSearchKey feeds the query input. Enter keeps the filter and hands
// keys back to the page; esc drops the filter.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSearch()
		return nil, true
	case tea.KeyEnter:
		m.search.Blur()
		return nil, true
	case tea.KeyUp, tea.KeyDown, tea.KeyCtrlC:
		return nil, false
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	query := m.search.Value()
	m.ui.With(func(s *uistate.Stack) {
		s.SetSearchQuery(query)
	})
	return cmd, true
}

func (m *Model) closeSearch() {
	m.search.Blur()
	m.search.SetValue("")
	m.ui.With(func(s *uistate.Stack) {
		if _, ok := s.Popup().(*uistate.SearchPopup); ok {
			s.ClosePopup()
		}
	})
}

func (m Model) runCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	if ev, ok := keymap.EventFor(cmd); ok {
		m.events.Send(ev)
		if cmd == keymap.CommandQuit {
			m.ui.With(func(s *uistate.Stack) { s.Quit() })
			return m, tea.Quit
		}
		return m, nil
	}

	switch cmd {
	case keymap.CommandOpenCommandHelp:
		m.search.Blur()
		m.ui.With(func(s *uistate.Stack) { s.OpenPopup(&uistate.CommandHelpPopup{}) })

	case keymap.CommandSwitchPlaylist:
		m.search.Blur()
		if len(m.store.Playlists()) == 0 {
			m.events.Send(event.GetUserPlaylists{})
		}
		m.ui.With(func(s *uistate.Stack) { s.OpenPopup(&uistate.PlaylistListPopup{}) })

	case keymap.CommandSwitchDevice:
		m.search.Blur()
		m.events.Send(event.GetDevices{})
		m.ui.With(func(s *uistate.Stack) { s.OpenPopup(&uistate.DeviceListPopup{}) })

	case keymap.CommandPlaySelectedTrackAlbum:
		if t := m.selectedTrack(); t != nil && t.URI != "" && t.AlbumID != "" {
			m.events.Send(event.PlayTrack{ContextURI: spotify.AlbumURI(t.AlbumID), TrackURI: t.URI})
		}

	case keymap.CommandSearchContextTracks:
		m.search.SetValue("")
		m.ui.With(func(s *uistate.Stack) { s.OpenSearchPopup() })
		focus := m.search.Focus()
		return m, focus

	case keymap.CommandClosePopup:
		m.closePopup()

	case keymap.CommandBack:
		if !m.closePopup() {
			m.ui.With(func(s *uistate.Stack) { s.PopPage() })
		}

	case keymap.CommandSelectNext:
		m.moveSelection(1)

	case keymap.CommandSelectPrevious:
		m.moveSelection(-1)

	case keymap.CommandChooseSelected:
		m.chooseSelected()

	case keymap.CommandSortByTrack:
		m.sortTracks(state.SortByName)
	case keymap.CommandSortByArtists:
		m.sortTracks(state.SortByArtists)
	case keymap.CommandSortByAlbum:
		m.sortTracks(state.SortByAlbum)
	case keymap.CommandSortByDuration:
		m.sortTracks(state.SortByDuration)
	case keymap.CommandSortByAddedDate:
		m.sortTracks(state.SortByAddedDate)
	case keymap.CommandReverseOrder:
		if m.onContextPage() {
			m.store.ReversePlaylistTracks()
		}
	}
	return m, nil
}

// closePopup reports whether a popup was open.
func (m *Model) closePopup() bool {
	var open bool
	m.ui.With(func(s *uistate.Stack) {
		open = s.Popup() != nil
	})
	if !open {
		return false
	}
	m.search.Blur()
	m.search.SetValue("")
	m.ui.With(func(s *uistate.Stack) { s.ClosePopup() })
	return true
}

func (m *Model) onContextPage() bool {
	var ok bool
	m.ui.With(func(s *uistate.Stack) {
		_, ok = s.CurrentPage().(*uistate.ContextPage)
	})
	return ok
}

func (m *Model) sortTracks(key state.SortKey) {
	if m.onContextPage() {
		m.store.SortPlaylistTracks(key)
	}
}

// moveSelection moves the cursor of the focused popup, or of the page.
func (m *Model) moveSelection(delta int) {
	snap := m.store.Snapshot()
	height := m.listHeight()
	m.ui.With(func(s *uistate.Stack) {
		sel, n := m.focusedList(s, snap)
		if sel != nil {
			sel.Move(delta, n, height)
		}
	})
}

// focusedList returns the selection that receives navigation keys and
// the number of items it ranges over. Must run inside ui.With.
func (m *Model) focusedList(s *uistate.Stack, snap state.Snapshot) (*uistate.Selection, int) {
	switch p := s.Popup().(type) {
	case *uistate.CommandHelpPopup:
		return p.Selection(), len(m.bindings)
	case *uistate.PlaylistListPopup:
		return p.Selection(), len(snap.Playlists)
	case *uistate.DeviceListPopup:
		return p.Selection(), len(snap.Devices)
	case *uistate.SearchPopup, nil:
	}

	page := s.CurrentPage()
	switch p := page.(type) {
	case *uistate.LibraryPage:
		return p.Selection(), len(uistate.FilterItems(s, snap.Playlists))
	case *uistate.ContextPage:
		return p.Selection(), len(uistate.FilterItems(s, pageTracks(p, snap)))
	}
	return nil, 0
}

// chooseSelected opens the selected playlist, moves playback to the
// selected device, or plays the selected track within its playlist.
func (m *Model) chooseSelected() {
	snap := m.store.Snapshot()
	var id string
	var ev event.Event
	m.ui.With(func(s *uistate.Stack) {
		switch p := s.Popup().(type) {
		case *uistate.PlaylistListPopup:
			if i := p.Selection().Index(); i < len(snap.Playlists) {
				id = snap.Playlists[i].ID
			}
			return
		case *uistate.DeviceListPopup:
			if i := p.Selection().Index(); i < len(snap.Devices) {
				ev = event.TransferPlayback{DeviceID: snap.Devices[i].ID}
				s.ClosePopup()
			}
			return
		case *uistate.CommandHelpPopup:
			return
		case *uistate.SearchPopup, nil:
		}

		switch p := s.CurrentPage().(type) {
		case *uistate.LibraryPage:
			items := uistate.FilterItems(s, snap.Playlists)
			if i := p.Selection().Index(); i < len(items) {
				id = items[i].ID
			}
		case *uistate.ContextPage:
			items := uistate.FilterItems(s, pageTracks(p, snap))
			if i := p.Selection().Index(); i < len(items) && items[i].URI != "" {
				ev = event.PlayTrack{ContextURI: spotify.PlaylistURI(p.PlaylistID), TrackURI: items[i].URI}
			}
		}
	})
	if ev != nil {
		m.events.Send(ev)
	}
	if id != "" {
		m.openPlaylist(id)
	}
}

// selectedTrack returns the track under the cursor of the open context
// page, or nil when no track page has focus.
func (m *Model) selectedTrack() *spotify.Track {
	snap := m.store.Snapshot()
	var track *spotify.Track
	m.ui.With(func(s *uistate.Stack) {
		if s.IsPopupFocused() {
			return
		}
		p, ok := s.CurrentPage().(*uistate.ContextPage)
		if !ok {
			return
		}
		items := uistate.FilterItems(s, pageTracks(p, snap))
		if i := p.Selection().Index(); i < len(items) {
			track = items[i]
		}
	})
	return track
}

// clampSelections keeps every visible cursor inside its list after the
// data or the window changed.
func (m *Model) clampSelections() {
	snap := m.store.Snapshot()
	height := m.listHeight()
	m.ui.With(func(s *uistate.Stack) {
		if sel, n := m.focusedList(s, snap); sel != nil {
			sel.Clamp(n, height)
		}
		if s.IsPopupFocused() {
			page := s.CurrentPage()
			n := 0
			switch p := page.(type) {
			case *uistate.LibraryPage:
				n = len(uistate.FilterItems(s, snap.Playlists))
			case *uistate.ContextPage:
				n = len(uistate.FilterItems(s, pageTracks(p, snap)))
			}
			page.Selection().Clamp(n, height)
		}
	})
}
