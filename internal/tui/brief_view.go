package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderBriefOverlay centers the tactical brief in a bordered card.
func renderBriefOverlay(text string, width, height int) string {
	cardWidth := width - 12
	if cardWidth > 80 {
		cardWidth = 80
	}
	if cardWidth < 30 {
		cardWidth = 30
	}

	var body []string
	body = append(body, briefTitleStyle.Render("TACTICAL BRIEF"))
	body = append(body, "")
	for _, line := range strings.Split(wrapText(text, cardWidth-4), "\n") {
		body = append(body, briefBodyStyle.Render(line))
	}
	body = append(body, "")
	body = append(body, helpDimStyle.Render("esc close"))

	card := briefCardStyle.Width(cardWidth).Render(strings.Join(body, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
