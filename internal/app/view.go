package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/spotwave/internal/errmsg"
	"github.com/llehouerou/spotwave/internal/keymap"
	"github.com/llehouerou/spotwave/internal/spotify"
	"github.com/llehouerou/spotwave/internal/state"
	"github.com/llehouerou/spotwave/internal/ui/playerbar"
	"github.com/llehouerou/spotwave/internal/ui/popup"
	"github.com/llehouerou/spotwave/internal/ui/render"
	uistate "github.com/llehouerou/spotwave/internal/ui/state"
	"github.com/llehouerou/spotwave/internal/ui/styles"
)

const playerBarHeight = playerbar.Height

// helpContexts orders the sections of the help popup.
var helpContexts = []string{"global", "playback", "navigation", "sort"}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.store.Snapshot()

	var header, table string
	var rows []string
	var dialog *popup.Dialog
	var searching bool

	m.ui.With(func(s *uistate.Stack) {
		searching = s.Popup() != nil && !s.IsPopupFocused()
		switch p := s.CurrentPage().(type) {
		case *uistate.LibraryPage:
			header = m.libraryHeader(snap)
			table, rows = m.libraryRows(s, p, snap)
		case *uistate.ContextPage:
			header = m.contextHeader(p, snap)
			table, rows = m.trackRows(s, p, snap)
		}

		switch p := s.Popup().(type) {
		case *uistate.CommandHelpPopup:
			dialog = m.helpDialog(p)
		case *uistate.PlaylistListPopup:
			dialog = m.playlistDialog(p, snap)
		case *uistate.DeviceListPopup:
			dialog = m.deviceDialog(p, snap)
		case *uistate.SearchPopup, nil:
		}
	})

	t := styles.T().S()
	lines := make([]string, 0, m.height)
	lines = append(lines, render.Fit(t.Title.Render(header), m.width))
	lines = append(lines, render.Fit(t.Header.Render(table), m.width))
	for i := range m.listHeight() {
		if i < len(rows) {
			lines = append(lines, rows[i])
		} else {
			lines = append(lines, "")
		}
	}
	lines = append(lines, m.statusLine(snap, searching))
	view := strings.Join(lines, "\n")

	if dialog != nil {
		view = popup.Overlay(view, dialog.Render(m.width, m.height-playerBarHeight), m.width, len(lines))
	}
	return view + "\n" + playerbar.Render(snap.Playback, m.width)
}

func (m Model) statusLine(snap state.Snapshot, searching bool) string {
	t := styles.T().S()
	switch {
	case snap.LastError != nil:
		msg := errmsg.Format(errmsg.OpFor(snap.LastFailed), snap.LastError)
		return render.Fit(t.Error.Render(msg), m.width)
	case searching:
		return render.Fit(m.search.View(), m.width)
	case m.pendingKey != "":
		return t.Muted.Render(m.pendingKey + "-")
	}
	hint := "? help"
	if keys := m.keys.KeysFor(keymap.CommandOpenCommandHelp); len(keys) > 0 {
		hint = keys[0] + " help"
	}
	return render.Fit(t.Subtle.Render(hint), m.width)
}

func (m Model) libraryHeader(snap state.Snapshot) string {
	if snap.Playlists == nil {
		return "Library (loading)"
	}
	return fmt.Sprintf("Library · %s playlists", humanize.Comma(int64(len(snap.Playlists))))
}

func (m Model) contextHeader(p *uistate.ContextPage, snap state.Snapshot) string {
	if snap.Playlist == nil || snap.Playlist.ID != p.PlaylistID {
		return "Loading playlist..."
	}
	pl := snap.Playlist
	h := fmt.Sprintf("%s · %s · %s tracks", render.Sanitize(pl.Name), render.Sanitize(pl.Owner),
		humanize.Comma(int64(pl.Total)))
	if snap.TracksFor != pl.ID && pl.Next != "" {
		h += " (loading)"
	}
	return h
}

// pageTracks returns the tracks known for the page's playlist: the drained
// list once available, the first page before that.
func pageTracks(p *uistate.ContextPage, snap state.Snapshot) []spotify.Track {
	if snap.TracksFor == p.PlaylistID {
		return snap.PlaylistTracks
	}
	if snap.Playlist != nil && snap.Playlist.ID == p.PlaylistID {
		return snap.Playlist.Tracks
	}
	return nil
}

func (m Model) libraryRows(s *uistate.Stack, p *uistate.LibraryPage, snap state.Snapshot) (string, []string) {
	items := uistate.FilterItems(s, snap.Playlists)
	nameW := max(m.width-30, 10)
	head := render.Column("Name", nameW) + " " + render.Column("Owner", 18) + " " + "Tracks"

	sel := p.Selection()
	rows := make([]string, 0, m.listHeight())
	for i := sel.Offset(); i < len(items) && len(rows) < m.listHeight(); i++ {
		pl := items[i]
		line := render.Column(pl.Name, nameW) + " " +
			render.Column(pl.Owner, 18) + " " +
			fmt.Sprintf("%6s", humanize.Comma(int64(pl.Total)))
		rows = append(rows, m.row(line, i == sel.Index(), false, s.IsPopupFocused()))
	}
	return head, rows
}

// Track table column widths, excluding the flexible title column.
const (
	colDuration = 6
	colAdded    = 14
)

func (m Model) trackRows(s *uistate.Stack, p *uistate.ContextPage, snap state.Snapshot) (string, []string) {
	items := uistate.FilterItems(s, pageTracks(p, snap))

	flex := max(m.width-colDuration-colAdded-4, 30)
	titleW := flex * 2 / 5
	artistW := flex * 3 / 10
	albumW := flex - titleW - artistW
	head := render.Column("Title", titleW) + " " + render.Column("Artists", artistW) + " " +
		render.Column("Album", albumW) + " " + render.Column("Time", colDuration) + " " + "Added"

	playingID := ""
	if snap.Playback != nil && snap.Playback.Item != nil {
		playingID = snap.Playback.Item.ID
	}

	sel := p.Selection()
	rows := make([]string, 0, m.listHeight())
	for i := sel.Offset(); i < len(items) && len(rows) < m.listHeight(); i++ {
		t := items[i]
		added := ""
		if !t.AddedAt.IsZero() {
			added = humanize.Time(t.AddedAt)
		}
		line := render.Column(t.Name, titleW) + " " +
			render.Column(t.ArtistNames(), artistW) + " " +
			render.Column(t.Album, albumW) + " " +
			render.Column(render.Duration(t.Duration), colDuration) + " " +
			render.Column(added, colAdded)
		rows = append(rows, m.row(line, i == sel.Index(), t.ID != "" && t.ID == playingID, s.IsPopupFocused()))
	}
	return head, rows
}

func (m Model) row(line string, selected, playing, dimmed bool) string {
	t := styles.T().S()
	var style lipgloss.Style
	switch {
	case selected && !dimmed:
		style = t.Cursor
	case playing:
		style = t.Playing
	default:
		style = t.Base
	}
	return render.Fit(style.Render(line), m.width)
}

func (m Model) helpDialog(p *uistate.CommandHelpPopup) *popup.Dialog {
	t := styles.T().S()
	var lines []string
	for _, ctx := range helpContexts {
		for _, b := range keymap.ByContext(m.bindings, ctx) {
			keys := strings.Join(displayKeys(b.Keys), ", ")
			lines = append(lines, t.Accent.Render(render.Column(keys, 14))+" "+b.Description)
		}
	}
	room := popup.HeightFor(m.height-playerBarHeight, true, true)
	start := scrollStart(p.Selection(), len(lines), room)
	return &popup.Dialog{
		Title:  "Keys",
		Lines:  lines[start:],
		Footer: popup.Hint("j/k", "scroll", "esc", "close"),
	}
}

func (m Model) playlistDialog(p *uistate.PlaylistListPopup, snap state.Snapshot) *popup.Dialog {
	sel := p.Selection()
	width := min(max(m.width/2, 30), m.width-4)
	room := popup.HeightFor(m.height-playerBarHeight, true, true)

	var lines []string
	if snap.Playlists == nil {
		lines = append(lines, "Loading...")
	}
	start := scrollStart(sel, len(snap.Playlists), room)
	for i := start; i < len(snap.Playlists); i++ {
		pl := snap.Playlists[i]
		line := render.Column(pl.Name, width)
		if i == sel.Index() {
			line = styles.T().S().Cursor.Render(line)
		}
		lines = append(lines, line)
	}
	return &popup.Dialog{
		Title:  "Switch playlist",
		Lines:  lines,
		Footer: popup.Hint("enter", "open", "esc", "close"),
		Width:  width,
	}
}

func (m Model) deviceDialog(p *uistate.DeviceListPopup, snap state.Snapshot) *popup.Dialog {
	sel := p.Selection()
	width := min(max(m.width/2, 30), m.width-4)
	room := popup.HeightFor(m.height-playerBarHeight, true, true)
	t := styles.T().S()

	var lines []string
	switch {
	case snap.Devices == nil:
		lines = append(lines, "Loading...")
	case len(snap.Devices) == 0:
		lines = append(lines, t.Muted.Render("No devices available"))
	}
	start := scrollStart(sel, len(snap.Devices), room)
	for i := start; i < len(snap.Devices); i++ {
		d := snap.Devices[i]
		name := render.Sanitize(d.Name) + " (" + d.Type + ")"
		if d.Active {
			name += " *"
		}
		line := render.Column(name, width)
		if i == sel.Index() {
			line = t.Cursor.Render(line)
		}
		lines = append(lines, line)
	}
	return &popup.Dialog{
		Title:  "Switch device",
		Lines:  lines,
		Footer: popup.Hint("enter", "transfer", "esc", "close"),
		Width:  width,
	}
}

// scrollStart keeps the selected line of a popup in view.
func scrollStart(sel *uistate.Selection, n, room int) int {
	if n <= room {
		return 0
	}
	return min(max(sel.Index()-room+1, 0), n-room)
}

func displayKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}
