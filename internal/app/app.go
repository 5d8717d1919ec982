// Package app is the bubbletea program that renders the application and
// UI state stores and turns key presses into events.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/spotwave/internal/event"
	"github.com/llehouerou/spotwave/internal/keymap"
	"github.com/llehouerou/spotwave/internal/state"
	uistate "github.com/llehouerou/spotwave/internal/ui/state"
)

// RefreshInterval is how often the view re-reads the stores.
const RefreshInterval = 250 * time.Millisecond

const (
	// retryDelay spaces out the requests for a page whose load failed.
	retryDelay = 2 * time.Second
	// requestTimeout is how long a load may produce neither data nor an
	// error before it is sent again.
	requestTimeout = 30 * time.Second
)

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	Store    *state.Store
	UI       *uistate.Store
	Events   event.Sender
	Bindings []keymap.Binding // nil selects keymap.Default
}

// Model is the root application model. The stores are shared with the
// dispatcher loop; everything else is owned by the bubbletea goroutine.
type Model struct {
	store    *state.Store
	ui       *uistate.Store
	events   event.Sender
	bindings []keymap.Binding
	keys     *keymap.Resolver
	search   textinput.Model

	pendingKey string
	// Playlist and track loads requested for the open page. Each is sent
	// once unless it fails or times out.
	playlistRequested string
	tracksRequested   string
	requestedAt       time.Time

	width  int
	height int
}

// New creates the model.
func New(opts Options) Model {
	bindings := opts.Bindings
	if bindings == nil {
		bindings = keymap.Default
	}
	ui := opts.UI
	if ui == nil {
		ui = uistate.NewStore(nil)
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search"
	ti.CharLimit = 128

	return Model{
		store:    opts.Store,
		ui:       ui,
		events:   opts.Events,
		bindings: bindings,
		keys:     keymap.NewResolver(bindings),
		search:   ti,
		width:    80,
		height:   24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampSelections()
		return m, nil

	case tickMsg:
		if !m.store.IsRunning() {
			return m, tea.Quit
		}
		m.syncPage(time.Time(msg))
		m.clampSelections()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// syncPage requests the data the open context page needs. The playlist is
// loaded first; its tracks are drained once it is current, since events run
// concurrently and the drain reads the current playlist.
func (m *Model) syncPage(now time.Time) {
	var id string
	m.ui.With(func(s *uistate.Stack) {
		if p, ok := s.CurrentPage().(*uistate.ContextPage); ok {
			id = p.PlaylistID
		}
	})
	if id == "" {
		return
	}

	snap := m.store.Snapshot()
	if snap.Playlist == nil || snap.Playlist.ID != id {
		m.request(now, snap, event.GetPlaylist{ID: id}, &m.playlistRequested, id)
		return
	}
	if snap.TracksFor == id {
		return
	}
	m.request(now, snap, event.GetCurrentPlaylistTracks{}, &m.tracksRequested, id)
}

// request sends e for playlist id unless it is already pending. A pending
// request is sent again once its failure is recorded or it timed out.
func (m *Model) request(now time.Time, snap state.Snapshot, e event.Event, pending *string, id string) {
	if *pending == id {
		elapsed := now.Sub(m.requestedAt)
		failed := snap.LastError != nil && snap.LastFailed == e && snap.LastUpdated.After(m.requestedAt)
		if elapsed < requestTimeout && (!failed || elapsed < retryDelay) {
			return
		}
	}
	*pending = id
	m.requestedAt = now
	m.events.Send(e)
}

// openPlaylist navigates to the tracks of playlist id.
func (m *Model) openPlaylist(id string) {
	m.ui.With(func(s *uistate.Stack) {
		s.PushPage(&uistate.ContextPage{PlaylistID: id})
	})
	m.playlistRequested = ""
	m.tracksRequested = ""
	m.search.Blur()
	m.syncPage(time.Now())
}

// listHeight is the number of rows available to the page list.
func (m Model) listHeight() int {
	// header, table header, status line and player bar
	return max(m.height-3-playerBarHeight, 1)
}
