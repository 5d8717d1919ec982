package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/spotwave/internal/ui/styles"
)

func titleStyle() lipgloss.Style    { return styles.T().S().Playing }
func infoStyle() lipgloss.Style     { return styles.T().S().Muted }
func deviceStyle() lipgloss.Style   { return styles.T().S().Subtle }
func modeOnStyle() lipgloss.Style   { return styles.T().S().Accent }
func modeOffStyle() lipgloss.Style  { return styles.T().S().Subtle }
func filledStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(styles.T().Primary) }
func emptyBarStyle() lipgloss.Style { return styles.T().S().Subtle }
