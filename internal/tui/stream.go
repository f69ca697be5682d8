package tui

import (
	"strings"

	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/sentiment"
)

func sentimentBadge(label sentiment.Label) string {
	switch label {
	case sentiment.Negative:
		return sentimentNegStyle.Render("NEG")
	case sentiment.Positive:
		return sentimentPosStyle.Render("POS")
	default:
		return sentimentNeuStyle.Render("NEU")
	}
}

func renderStreamItem(sig intercept.Signal, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var head string
	if selected {
		head = itemSelectedStyle.Render("> "+truncateStr(sig.Author, 24)) +
			" " + sentimentBadge(sig.Sentiment) +
			" " + itemTimeStyle.Render(sig.ObservedAt)
	} else {
		head = "  " + itemAuthorStyle.Render(truncateStr(sig.Author, 24)) +
			" " + sentimentBadge(sig.Sentiment) +
			" " + itemTimeStyle.Render(sig.ObservedAt)
	}

	body := "  " + truncateStr(sig.Text, width-4)

	return head + "\n" + body
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// renderStream lays out the intercepted signals newest first, keeping
// the cursor visible.
func renderStream(signals []intercept.Signal, cursor int, height int, width int) string {
	if len(signals) == 0 {
		return lipglossCenter("Awaiting signals...", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(signals) {
		end = len(signals)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderStreamItem(signals[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
