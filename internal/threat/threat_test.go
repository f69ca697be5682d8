package threat

import (
	"fmt"
	"testing"

	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/sentiment"
)

var sigSeq int

func sig(author string, label sentiment.Label, video string) intercept.Signal {
	sigSeq++
	return intercept.Signal{
		ID:           fmt.Sprintf("c%d", sigSeq),
		Author:       author,
		Sentiment:    label,
		VideoID:      video,
		ReferenceURL: fmt.Sprintf("https://www.youtube.com/watch?v=%s&lc=c%d", video, sigSeq),
	}
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil)
	if len(report.PriorityThreats) != 0 || len(report.SecondaryNegative) != 0 {
		t.Error("expected both tiers empty for no signals")
	}
	if report.Total != 0 || report.NegPercent != 0 {
		t.Errorf("expected zero stats, got total=%d neg=%f", report.Total, report.NegPercent)
	}
	if report.Risk != "Optimal" {
		t.Errorf("expected Optimal risk, got %s", report.Risk)
	}
}

func TestAggregateRepeaterScenario(t *testing.T) {
	signals := []intercept.Signal{
		sig("A", sentiment.Negative, "v1"),
		sig("A", sentiment.Negative, "v2"),
		sig("B", sentiment.Positive, "v1"),
	}

	report := Aggregate(signals)

	if len(report.PriorityThreats) != 1 {
		t.Fatalf("expected 1 priority threat, got %d", len(report.PriorityThreats))
	}
	top := report.PriorityThreats[0]
	if top.Name != "A" {
		t.Errorf("expected A as priority threat, got %s", top.Name)
	}
	if top.NegPercent() != 100 {
		t.Errorf("expected 100%% negative, got %f", top.NegPercent())
	}
	if top.UniqueVideos != 2 {
		t.Errorf("expected 2 unique videos, got %d", top.UniqueVideos)
	}
	// B has a single mention and is not a repeater.
	if len(report.SecondaryNegative) != 0 {
		t.Errorf("expected empty secondary tier, got %v", report.SecondaryNegative)
	}
}

func TestSingleMentionAuthorsExcluded(t *testing.T) {
	report := Aggregate([]intercept.Signal{sig("A", sentiment.Negative, "v1")})
	if len(report.PriorityThreats) != 0 || len(report.SecondaryNegative) != 0 {
		t.Error("single-mention author must not appear in any tier")
	}
}

func TestZeroNegativeAuthorsInNeitherTier(t *testing.T) {
	report := Aggregate([]intercept.Signal{
		sig("A", sentiment.Positive, "v1"),
		sig("A", sentiment.Neutral, "v2"),
	})
	if len(report.PriorityThreats) != 0 || len(report.SecondaryNegative) != 0 {
		t.Error("author with no negative signals must not appear in any tier")
	}
}

func TestTiersAreDisjointAndThresholded(t *testing.T) {
	signals := []intercept.Signal{
		// A: 2/3 negative -> priority
		sig("A", sentiment.Negative, "v1"),
		sig("A", sentiment.Negative, "v2"),
		sig("A", sentiment.Positive, "v1"),
		// B: exactly half negative -> secondary (boundary stays out of priority)
		sig("B", sentiment.Negative, "v1"),
		sig("B", sentiment.Neutral, "v2"),
		// C: 1/4 negative -> secondary
		sig("C", sentiment.Negative, "v1"),
		sig("C", sentiment.Positive, "v1"),
		sig("C", sentiment.Neutral, "v1"),
		sig("C", sentiment.Neutral, "v1"),
	}

	report := Aggregate(signals)

	inPriority := map[string]bool{}
	for _, r := range report.PriorityThreats {
		inPriority[r.Name] = true
		if r.NegFraction <= 0.5 {
			t.Errorf("%s in priority tier with NegFraction %f", r.Name, r.NegFraction)
		}
	}
	for _, r := range report.SecondaryNegative {
		if inPriority[r.Name] {
			t.Errorf("%s appears in both tiers", r.Name)
		}
		if r.NegFraction > 0.5 || r.NegFraction == 0 {
			t.Errorf("%s in secondary tier with NegFraction %f", r.Name, r.NegFraction)
		}
	}
	if !inPriority["A"] {
		t.Error("expected A in priority tier")
	}
	if len(report.SecondaryNegative) != 2 {
		t.Fatalf("expected B and C in secondary tier, got %v", report.SecondaryNegative)
	}
}

func TestPrioritySortWithVideoTieBreak(t *testing.T) {
	signals := []intercept.Signal{
		// A: 100% negative, 1 video
		sig("A", sentiment.Negative, "v1"),
		sig("A", sentiment.Negative, "v1"),
		// B: 100% negative, 2 videos -> wins the tie
		sig("B", sentiment.Negative, "v1"),
		sig("B", sentiment.Negative, "v2"),
		// C: 2/3 negative
		sig("C", sentiment.Negative, "v1"),
		sig("C", sentiment.Negative, "v2"),
		sig("C", sentiment.Positive, "v3"),
	}

	report := Aggregate(signals)
	if len(report.PriorityThreats) != 3 {
		t.Fatalf("expected 3 priority threats, got %d", len(report.PriorityThreats))
	}
	want := []string{"B", "A", "C"}
	for i, name := range want {
		if report.PriorityThreats[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, report.PriorityThreats[i].Name)
		}
	}
}

func TestSecondarySortWithCountTieBreak(t *testing.T) {
	signals := []intercept.Signal{
		// A: 1/3 negative, 2 videos
		sig("A", sentiment.Negative, "v1"),
		sig("A", sentiment.Positive, "v2"),
		sig("A", sentiment.Neutral, "v2"),
		// B: 1/2 negative, 2 videos -> tie on videos, fewer signals
		sig("B", sentiment.Negative, "v1"),
		sig("B", sentiment.Positive, "v2"),
		// C: 1/2 negative, 1 video
		sig("C", sentiment.Negative, "v1"),
		sig("C", sentiment.Positive, "v1"),
	}

	report := Aggregate(signals)
	if len(report.SecondaryNegative) != 3 {
		t.Fatalf("expected 3 secondary repeaters, got %d", len(report.SecondaryNegative))
	}
	want := []string{"A", "B", "C"}
	for i, name := range want {
		if report.SecondaryNegative[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, report.SecondaryNegative[i].Name)
		}
	}
}

func TestLinksDedupedAndCapped(t *testing.T) {
	var signals []intercept.Signal
	for i := 0; i < 8; i++ {
		s := sig("A", sentiment.Negative, "v1")
		if i%2 == 0 {
			s.ReferenceURL = "https://www.youtube.com/watch?v=v1&lc=dup"
		}
		signals = append(signals, s)
	}

	report := Aggregate(signals)
	if len(report.PriorityThreats) != 1 {
		t.Fatalf("expected 1 priority threat, got %d", len(report.PriorityThreats))
	}
	links := report.PriorityThreats[0].Links
	if len(links) > 5 {
		t.Errorf("expected at most 5 links, got %d", len(links))
	}
	seen := map[string]bool{}
	for _, l := range links {
		if seen[l] {
			t.Errorf("duplicate link %s", l)
		}
		seen[l] = true
	}
}

func TestHeadlineStats(t *testing.T) {
	signals := []intercept.Signal{
		sig("A", sentiment.Negative, "v1"),
		sig("B", sentiment.Negative, "v1"),
		sig("C", sentiment.Positive, "v1"),
		sig("D", sentiment.Neutral, "v1"),
	}

	report := Aggregate(signals)
	if report.Total != 4 {
		t.Errorf("expected total 4, got %d", report.Total)
	}
	if report.NegPercent != 50 {
		t.Errorf("expected 50%% negative, got %f", report.NegPercent)
	}
	if report.Risk != "High" {
		t.Errorf("expected High risk above 30%%, got %s", report.Risk)
	}
}
