// Package threat derives repeat-poster rankings from the current
// intercept store contents. Aggregate is a pure function recomputed on
// every read; there is no incremental state to keep consistent.
package threat

import (
	"sort"

	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/sentiment"
)

const maxSampleLinks = 5

// Rollup is the per-author aggregate over the current store.
type Rollup struct {
	Name string `json:"name"`
	// Count is the author's total signals. Single-mention authors are
	// not repeaters and never appear in a tier.
	Count int `json:"count"`
	// NegFraction is negative signals over total, in [0,1].
	NegFraction  float64 `json:"neg_fraction"`
	UniqueVideos int     `json:"unique_videos"`
	// Links are deduplicated reference URLs, capped at maxSampleLinks.
	Links []string `json:"links"`
}

// NegPercent is NegFraction scaled for display.
func (r Rollup) NegPercent() float64 {
	return r.NegFraction * 100
}

// Report is the derived view the dashboard and the status API consume.
type Report struct {
	// PriorityThreats are repeaters with a majority-negative record,
	// worst first. Disjoint from SecondaryNegative.
	PriorityThreats []Rollup `json:"priority_threats"`
	// SecondaryNegative are repeaters with some negative signals but
	// not a majority, widest video spread first.
	SecondaryNegative []Rollup `json:"secondary_negative"`

	Total      int     `json:"total"`
	NegPercent float64 `json:"neg_percent"`
	Risk       string  `json:"risk"`
}

type authorAccum struct {
	name     string
	total    int
	negative int
	videos   map[string]struct{}
	links    []string
}

// Aggregate groups signals by author display name and partitions repeat
// posters into priority and secondary tiers.
//
// Priority: NegFraction > 0.5, ordered by NegFraction desc, ties broken
// by UniqueVideos desc. Secondary: 0 < NegFraction <= 0.5, ordered by
// UniqueVideos desc, ties broken by Count desc. Authors with no negative
// signals appear in neither tier.
func Aggregate(signals []intercept.Signal) Report {
	report := Report{Total: len(signals), Risk: "Optimal"}

	var negTotal int
	byAuthor := make(map[string]*authorAccum)
	var order []string

	for _, sig := range signals {
		if sig.Sentiment == sentiment.Negative {
			negTotal++
		}
		acc, ok := byAuthor[sig.Author]
		if !ok {
			acc = &authorAccum{name: sig.Author, videos: make(map[string]struct{})}
			byAuthor[sig.Author] = acc
			order = append(order, sig.Author)
		}
		acc.total++
		if sig.Sentiment == sentiment.Negative {
			acc.negative++
		}
		acc.videos[sig.VideoID] = struct{}{}
		acc.links = append(acc.links, sig.ReferenceURL)
	}

	if report.Total > 0 {
		report.NegPercent = float64(negTotal) / float64(report.Total) * 100
	}
	if report.NegPercent > 30 {
		report.Risk = "High"
	}

	for _, name := range order {
		acc := byAuthor[name]
		if acc.total <= 1 {
			continue
		}
		r := Rollup{
			Name:         acc.name,
			Count:        acc.total,
			NegFraction:  float64(acc.negative) / float64(acc.total),
			UniqueVideos: len(acc.videos),
			Links:        dedupeLinks(acc.links),
		}
		switch {
		case r.NegFraction > 0.5:
			report.PriorityThreats = append(report.PriorityThreats, r)
		case r.NegFraction > 0:
			report.SecondaryNegative = append(report.SecondaryNegative, r)
		}
	}

	sort.SliceStable(report.PriorityThreats, func(i, j int) bool {
		a, b := report.PriorityThreats[i], report.PriorityThreats[j]
		if a.NegFraction != b.NegFraction {
			return a.NegFraction > b.NegFraction
		}
		return a.UniqueVideos > b.UniqueVideos
	})

	sort.SliceStable(report.SecondaryNegative, func(i, j int) bool {
		a, b := report.SecondaryNegative[i], report.SecondaryNegative[j]
		if a.UniqueVideos != b.UniqueVideos {
			return a.UniqueVideos > b.UniqueVideos
		}
		return a.Count > b.Count
	})

	return report
}

func dedupeLinks(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	var out []string
	for _, l := range links {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
		if len(out) == maxSampleLinks {
			break
		}
	}
	return out
}
