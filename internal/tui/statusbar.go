package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(keyword string, scanning, demo, briefing bool, width int) string {
	demoStyle := lipgloss.NewStyle().
		Foreground(colorWarn).
		Bold(true)

	left := fmt.Sprintf(" monitoring: %s", keyword)
	if demo {
		left += " · " + demoStyle.Render("DEMO")
	}
	if scanning {
		left += " (scanning...)"
	}
	if briefing {
		left += " (requesting brief...)"
	}

	right := " / keyword  s scan  d demo  b brief  ? help  q quit "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
