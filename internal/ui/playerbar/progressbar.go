package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/spotwave/internal/ui/render"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderProgress renders "1:23 ━━━━───── 3:58" in width columns.
func RenderProgress(position, duration time.Duration, width int) string {
	posStr := render.Duration(position)
	durStr := render.Duration(duration)

	barWidth := width - len(posStr) - len(durStr) - 2
	if barWidth < 3 {
		return posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := max(min(int(float64(barWidth)*ratio), barWidth), 0)

	return posStr + " " +
		filledStyle().Render(strings.Repeat(filledBlock, filled)) +
		emptyBarStyle().Render(strings.Repeat(emptyBlock, barWidth-filled)) +
		" " + durStr
}
