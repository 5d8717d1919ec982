package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestDialogRender_ContainsContent(t *testing.T) {
	d := Dialog{Title: "Help", Lines: []string{"q  quit", "?  help"}, Footer: "esc close"}
	out := ansi.Strip(d.Render(80, 24))

	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "q  quit")
	assert.Contains(t, out, "esc close")
}

func TestDialogRender_LimitsLines(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "row"
	}
	out := Dialog{Lines: lines}.Render(40, 10)

	assert.LessOrEqual(t, strings.Count(out, "\n")+1, 10)
}

func TestOverlay_CentersBox(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	out := Overlay(base, "XX\nXX", 10, 5)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 5)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "....XX....", lines[1])
	assert.Equal(t, "....XX....", lines[2])
	assert.Equal(t, "..........", lines[3])
}

func TestOverlay_PadsShortBase(t *testing.T) {
	out := Overlay("", "ab", 6, 3)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "  ab  ", lines[1])
}

func TestHeightFor(t *testing.T) {
	assert.Equal(t, 18, HeightFor(24, true, true))
	assert.Equal(t, 22, HeightFor(24, false, false))
	assert.Equal(t, 1, HeightFor(3, true, true))
}

func TestHint(t *testing.T) {
	assert.Equal(t, "enter open  esc close", Hint("enter", "open", "esc", "close"))
}
