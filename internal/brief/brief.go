// Package brief packages recent negative signals into a tactical-brief
// prompt and forwards it to a generative-text provider.
package brief

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ALOKESHWARGOUD/repscan/internal/intercept"
	"github.com/ALOKESHWARGOUD/repscan/internal/sentiment"
)

const (
	// maxBriefSignals caps how many negative signals feed one brief.
	maxBriefSignals = 15

	// Placeholder texts shown instead of surfacing provider failures.
	msgNoCandidate = "ANALYSIS_FAIL: SIGNAL_TOO_LOW"
	msgUplinkError = "AI_UPLINK_ERROR: Check API Permissions"
)

const briefPrompt = `Analyze these potential attacker signals for keyword "%s": [%s].
1. Identify coordination patterns (Narrative clusters).
2. Classify if this is an "Organized PR Attack" or "Organic Criticism".
3. Suggest a professional 'Arctic' response strategy.
Tone: High-level tactical intelligence. Brief and professional.`

// Provider sends one prompt and returns the first candidate text.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New creates a Provider for the configured backend.
func New(provider, model, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI not configured")
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch provider {
	case "", "gemini":
		if model == "" {
			model = "gemini-2.0-flash-exp"
		}
		return &geminiProvider{apiKey: apiKey, model: model, client: client}, nil
	case "claude":
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		return &claudeProvider{apiKey: apiKey, model: model, client: client}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: gemini, claude)", provider)
	}
}

// Requester guards brief generation: one request in flight at a time,
// and no request at all when there is nothing to analyze.
type Requester struct {
	mu       sync.Mutex
	busy     bool
	provider Provider
	log      *zap.Logger
}

func NewRequester(provider Provider, log *zap.Logger) *Requester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Requester{provider: provider, log: log}
}

// Busy reports whether a brief request is in flight.
func (r *Requester) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Generate builds the prompt from the newest negative signals and
// returns the provider's answer verbatim. It refuses silently (empty
// string, no request) when busy or when there are no signals; provider
// failures come back as a fixed placeholder, never an error.
func (r *Requester) Generate(ctx context.Context, signals []intercept.Signal, keyword string) string {
	if len(signals) == 0 {
		return ""
	}

	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return ""
	}
	r.busy = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}()

	prompt := BuildPrompt(signals, keyword)
	text, err := r.provider.Complete(ctx, prompt)
	if err != nil {
		r.log.Warn("brief generation failed", zap.String("keyword", keyword), zap.Error(err))
		return msgUplinkError
	}
	if text == "" {
		return msgNoCandidate
	}
	return text
}

// BuildPrompt joins the texts of up to maxBriefSignals most recent
// negative signals into the tactical-brief template. Signals arrive
// newest first from the store, so a plain prefix take keeps recency.
func BuildPrompt(signals []intercept.Signal, keyword string) string {
	var texts []string
	for _, s := range signals {
		if s.Sentiment != sentiment.Negative {
			continue
		}
		texts = append(texts, s.Text)
		if len(texts) == maxBriefSignals {
			break
		}
	}
	return fmt.Sprintf(briefPrompt, keyword, strings.Join(texts, ", "))
}
