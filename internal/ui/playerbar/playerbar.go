// Package playerbar renders the now-playing bar.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/spotwave/internal/spotify"
	"github.com/llehouerou/spotwave/internal/ui/render"
	"github.com/llehouerou/spotwave/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// Height is the number of rows Render produces.
const Height = 4 // 2 content rows + 2 border rows

// Render returns the player bar for the given width. Without playback it
// shows a hint instead of track details.
func Render(pc *spotify.PlaybackContext, width int) string {
	inner := max(width-4, 10) // border + padding

	var top, bottom string
	switch {
	case pc == nil:
		top = infoStyle().Render("Nothing playing. Start playback on any device.")
	case pc.Item == nil:
		top = infoStyle().Render(statusSymbol(pc) + "  " + "No track")
		bottom = deviceLine(pc)
	default:
		top = trackLine(pc, inner)
		right := deviceLine(pc)
		bar := RenderProgress(pc.Progress, pc.Item.Duration, inner-ansi.StringWidth(right)-3)
		bottom = bar + "   " + right
	}

	content := render.Fit(top, inner) + "\n" + render.Fit(bottom, inner)
	return styles.T().Panel(false).Padding(0, 1).Width(width - 2).Render(content)
}

func statusSymbol(pc *spotify.PlaybackContext) string {
	if pc.IsPlaying {
		return playSymbol
	}
	return pauseSymbol
}

// trackLine is "▶ Title  Artists · Album" followed by the mode flags,
// which are right aligned.
func trackLine(pc *spotify.PlaybackContext, width int) string {
	modes := modeFlags(pc)
	modesW := lipgloss.Width(modes)

	title := render.Sanitize(pc.Item.Name)
	if title == "" {
		title = "Unknown Track"
	}
	var info []string
	if a := pc.Item.ArtistNames(); a != "" {
		info = append(info, render.Sanitize(a))
	}
	if pc.Item.Album != "" {
		info = append(info, render.Sanitize(pc.Item.Album))
	}

	avail := max(width-modesW-2, 10)
	left := statusSymbol(pc) + "  " + titleStyle().Render(render.Truncate(title, avail-3))
	if len(info) > 0 {
		left += "  " + infoStyle().Render(strings.Join(info, " · "))
	}
	left = render.Fit(left, avail)

	gap := max(width-lipgloss.Width(left)-modesW, 1)
	return left + strings.Repeat(" ", gap) + modes
}

func modeFlags(pc *spotify.PlaybackContext) string {
	shuffle := modeOffStyle().Render("shuffle")
	if pc.ShuffleState {
		shuffle = modeOnStyle().Render("shuffle")
	}
	repeatStyle := modeOffStyle()
	if pc.RepeatState != spotify.RepeatOff {
		repeatStyle = modeOnStyle()
	}
	return shuffle + " " + repeatStyle.Render("repeat:"+pc.RepeatState.String())
}

func deviceLine(pc *spotify.PlaybackContext) string {
	if pc.Device.Name == "" {
		return ""
	}
	return deviceStyle().Render(fmt.Sprintf("%s %d%%", render.Sanitize(pc.Device.Name), pc.Device.Volume))
}
