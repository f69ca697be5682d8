package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALOKESHWARGOUD/repscan/internal/threat"
	"github.com/ALOKESHWARGOUD/repscan/internal/velocity"
)

const maxThreatRows = 5

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// renderStatsRow draws the four headline boxes: volume, risk, negative
// share, and velocity.
func renderStatsRow(report threat.Report, avgVelocity float64, width int) string {
	riskStyle := statValueStyle
	if report.Risk == "High" {
		riskStyle = statAlertStyle
	}
	negStyle := statValueStyle
	if report.NegPercent > 30 {
		negStyle = statAlertStyle
	}

	boxWidth := width/4 - 2
	if boxWidth < 12 {
		boxWidth = 12
	}

	box := func(label, value string, style lipgloss.Style) string {
		content := statLabelStyle.Render(label) + "\n" + style.Render(value)
		return statBoxStyle.Width(boxWidth).Render(content)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("SIGNAL VOLUME", fmt.Sprintf("%d", report.Total), statValueStyle),
		box("SYSTEM RISK", report.Risk, riskStyle),
		box("NEGATIVE", fmt.Sprintf("%.0f%%", report.NegPercent), negStyle),
		box("VELOCITY", fmt.Sprintf("%.1f", avgVelocity), statValueStyle),
	)
}

// sparkline renders the rate window as block characters scaled to the
// window's own maximum.
func sparkline(samples []velocity.Sample, width int) string {
	if len(samples) == 0 {
		return ""
	}
	if width > 0 && len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	var maxRate float64
	for _, s := range samples {
		if s.Rate > maxRate {
			maxRate = s.Rate
		}
	}

	var b strings.Builder
	for _, s := range samples {
		idx := 0
		if maxRate > 0 {
			idx = int(s.Rate / maxRate * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func renderPulsePanel(samples []velocity.Sample, average float64, width int) string {
	title := panelTitleStyle.Render("FREQUENCY PULSE")
	chart := pulseStyle.Render(sparkline(samples, width-4))
	if chart == "" {
		chart = itemTimeStyle.Render("no samples yet")
	}
	avg := statLabelStyle.Render(fmt.Sprintf("avg %.1f", average))
	return title + "\n" + chart + "\n" + avg
}

func renderThreatRows(rollups []threat.Rollup, width int) []string {
	var lines []string
	n := len(rollups)
	if n > maxThreatRows {
		n = maxThreatRows
	}
	for _, r := range rollups[:n] {
		name := threatNameStyle.Render(truncateStr(r.Name, 20))
		meta := threatMetaStyle.Render(fmt.Sprintf("%dx · %.0f%% neg · %d vids", r.Count, r.NegPercent(), r.UniqueVideos))
		lines = append(lines, truncateStr(name+" "+meta, width))
	}
	if len(lines) == 0 {
		lines = append(lines, itemTimeStyle.Render("none detected"))
	}
	return lines
}

// renderThreatPanel draws the two repeat-poster tiers.
func renderThreatPanel(report threat.Report, width int) string {
	var lines []string
	lines = append(lines, panelTitleStyle.Render("PRIORITY THREATS"))
	lines = append(lines, renderThreatRows(report.PriorityThreats, width)...)
	lines = append(lines, "")
	lines = append(lines, panelTitleStyle.Render("SECONDARY NEGATIVE"))
	lines = append(lines, renderThreatRows(report.SecondaryNegative, width)...)
	return strings.Join(lines, "\n")
}
