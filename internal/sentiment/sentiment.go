package sentiment

import "strings"

// Label is the coarse sentiment assigned to a signal at ingestion.
type Label string

const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
)

// AllLabels returns the valid labels in canonical order.
func AllLabels() []Label {
	return []Label{Positive, Negative, Neutral}
}

// negativePatterns are checked before positivePatterns; a comment that
// matches both is NEGATIVE. Matching is case-insensitive substring
// matching, so "waiting" also matches "awaiting".
var negativePatterns = []string{
	"bad", "worst", "cringe", "flop", "hate", "cheap", "disaster",
	"boring", "troll", "waste", "logicless", "overaction",
}

var positivePatterns = []string{
	"awesome", "fire", "super", "love", "hit", "mass", "amazing",
	"blockbuster", "waiting", "king", "epic", "goosebumps",
}

// Classify maps raw comment text to a sentiment label. Pure and total:
// empty text is NEUTRAL, and every input maps to exactly one label.
func Classify(text string) Label {
	lowered := strings.ToLower(text)
	for _, p := range negativePatterns {
		if strings.Contains(lowered, p) {
			return Negative
		}
	}
	for _, p := range positivePatterns {
		if strings.Contains(lowered, p) {
			return Positive
		}
	}
	return Neutral
}
