package tui

import (
	"strings"
	"testing"

	"github.com/ALOKESHWARGOUD/repscan/internal/threat"
	"github.com/ALOKESHWARGOUD/repscan/internal/velocity"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("日本語テスト", 5)
	want := "日本..."
	if got != want {
		t.Errorf("truncateStr(Japanese, 5) = %q, want %q", got, want)
	}
}

func TestSparklineScalesToWindowMax(t *testing.T) {
	samples := []velocity.Sample{
		{Time: "a", Rate: 0},
		{Time: "b", Rate: 50},
		{Time: "c", Rate: 100},
	}
	got := sparkline(samples, 10)
	runes := []rune(got)
	if len(runes) != 3 {
		t.Fatalf("expected 3 glyphs, got %d (%q)", len(runes), got)
	}
	if runes[0] != sparkRunes[0] {
		t.Errorf("zero rate should use the lowest glyph, got %q", runes[0])
	}
	if runes[2] != sparkRunes[len(sparkRunes)-1] {
		t.Errorf("window max should use the tallest glyph, got %q", runes[2])
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := sparkline(nil, 10); got != "" {
		t.Errorf("expected empty sparkline, got %q", got)
	}
}

func TestSparklineTruncatesToWidth(t *testing.T) {
	var samples []velocity.Sample
	for i := 0; i < 15; i++ {
		samples = append(samples, velocity.Sample{Rate: float64(i)})
	}
	got := sparkline(samples, 5)
	if len([]rune(got)) != 5 {
		t.Errorf("expected 5 glyphs, got %d", len([]rune(got)))
	}
}

func TestRenderThreatRowsCapped(t *testing.T) {
	var rollups []threat.Rollup
	for i := 0; i < 8; i++ {
		rollups = append(rollups, threat.Rollup{Name: "troll", Count: 2})
	}
	rows := renderThreatRows(rollups, 60)
	if len(rows) != maxThreatRows {
		t.Errorf("expected %d rows, got %d", maxThreatRows, len(rows))
	}
}

func TestRenderThreatRowsEmpty(t *testing.T) {
	rows := renderThreatRows(nil, 60)
	if len(rows) != 1 || !strings.Contains(rows[0], "none detected") {
		t.Errorf("expected placeholder row, got %v", rows)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
}
