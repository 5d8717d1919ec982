// Package popup renders bordered dialogs and overlays them on a view.
package popup

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/spotwave/internal/ui/render"
	"github.com/llehouerou/spotwave/internal/ui/styles"
)

// Dialog is a bordered box with a title, content lines and a footer.
type Dialog struct {
	Title  string
	Lines  []string
	Footer string
	Width  int // inner width, 0 = fit content
}

// Render returns the dialog box, limited to the screen size.
func (d Dialog) Render(screenW, screenH int) string {
	t := styles.T()

	width := d.Width
	if width == 0 {
		width = max(ansi.StringWidth(d.Title), ansi.StringWidth(d.Footer))
		for _, l := range d.Lines {
			width = max(width, ansi.StringWidth(l))
		}
	}
	width = max(min(width, screenW-4), 1)

	lines := make([]string, 0, len(d.Lines)+4)
	if d.Title != "" {
		lines = append(lines, t.S().Title.Render(render.Truncate(d.Title, width)), "")
	}
	room := HeightFor(screenH, d.Title != "", d.Footer != "")
	body := d.Lines
	if len(body) > room {
		body = body[:room]
	}
	for _, l := range body {
		lines = append(lines, render.Fit(l, width))
	}
	if d.Footer != "" {
		lines = append(lines, "", t.S().Subtle.Render(render.Truncate(d.Footer, width)))
	}

	return t.Panel(true).
		Padding(0, 1).
		Width(width + 2).
		Render(strings.Join(lines, "\n"))
}

// Overlay draws box centered over base, which is width x height cells.
func Overlay(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(box, "\n")

	boxW := 0
	for _, l := range boxLines {
		boxW = max(boxW, ansi.StringWidth(l))
	}
	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxW)/2, 0)

	for i, l := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = splice(baseLines[row], l, left, width)
	}
	return strings.Join(baseLines, "\n")
}

// splice replaces the cells of line starting at col with overlay.
func splice(line, overlay string, col, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	end := col + ansi.StringWidth(overlay)

	prefix := ansi.Cut(line, 0, col)
	if w := ansi.StringWidth(prefix); w < col {
		// a wide rune straddled the edge
		prefix += strings.Repeat(" ", col-w)
	}
	out := prefix + overlay
	if end < width {
		suffix := ansi.Cut(line, end, width)
		if w := ansi.StringWidth(suffix); w < width-end {
			suffix = strings.Repeat(" ", width-end-w) + suffix
		}
		out += suffix
	}
	return out
}

// HeightFor returns how many content lines fit in a dialog on a screen
// of the given height.
func HeightFor(screenH int, titled, footer bool) int {
	h := screenH - 2
	if titled {
		h -= 2
	}
	if footer {
		h -= 2
	}
	return max(h, 1)
}

// Hint renders a dim key hint such as "enter open".
func Hint(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+" "+pairs[i+1])
	}
	return strings.Join(parts, "  ")
}
