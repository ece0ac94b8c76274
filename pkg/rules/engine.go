// Package rules implements the deterministic override layer that runs ahead
// of the probabilistic classifier. Rules exist to correct known model
// weaknesses on very short or purely conversational inputs without
// retraining. Evaluation order is part of the contract: greetings and known
// genuine phrases are high-precision signals and are checked before the
// length-based default, whose keyword guard must not be masked by them.
package rules

import (
	"fmt"
	"strings"

	"github.com/scamwatch/scamwatch/pkg/phrases"
	"github.com/scamwatch/scamwatch/pkg/textnorm"
)

const (
	labelSafe = "SAFE"

	// GreetingConfidence is assigned by the exact-greeting and
	// all-greeting-token rules.
	GreetingConfidence = 0.99
	// GenuineConfidence is assigned by the genuine-phrase containment rule.
	GenuineConfidence = 0.99
	// ShortConfidence is assigned by the short-message default.
	ShortConfidence = 0.98

	// MaxGreetingTokens bounds the all-greeting-token rule: longer messages
	// carry enough signal for the model even when every word is benign.
	MaxGreetingTokens = 6
	// MaxShortTokens and MinSafeLength define "short" for the default-SAFE
	// rule. Messages below either bound are presumptively safe unless a
	// scam keyword appears.
	MaxShortTokens = 3
	MinSafeLength  = 15
)

// Rule names, recorded on verdicts for audit logging.
const (
	RuleGreeting       = "greeting"
	RuleGreetingTokens = "greeting_tokens"
	RuleGenuinePhrase  = "genuine_phrase"
	RuleShortMessage   = "short_message"
)

// Verdict is a deterministic override. Confidence is a fixed constant per
// rule, not a model estimate.
type Verdict struct {
	Label      string
	Confidence float64
	Reason     string
	Rule       string
}

// Engine evaluates the ordered rule set against normalized text.
// Stateless apart from the injected read-only registry; safe for
// concurrent use.
type Engine struct {
	registry *phrases.Registry
}

func New(registry *phrases.Registry) *Engine {
	return &Engine{registry: registry}
}

// Apply evaluates the rules in priority order against normalized text and
// returns the first match, or nil to defer to the classifier. The input
// must already be canonicalized with textnorm.Normalize (normalization is
// idempotent, so passing raw text through Normalize first is equivalent).
func (e *Engine) Apply(normalized string) *Verdict {
	// 1. Exact greeting match.
	if e.registry.IsGreeting(normalized) {
		return &Verdict{
			Label:      labelSafe,
			Confidence: GreetingConfidence,
			Reason:     "Classified as SAFE by greeting rule.",
			Rule:       RuleGreeting,
		}
	}

	// 2. All-greeting-token match: covers unlisted combinations like
	// "hi good morning".
	if e.allGreetingTokens(normalized) {
		return &Verdict{
			Label:      labelSafe,
			Confidence: GreetingConfidence,
			Reason:     "Classified as SAFE by greeting rule (all greeting words).",
			Rule:       RuleGreetingTokens,
		}
	}

	// 3. Genuine-phrase containment.
	if phrase, ok := e.registry.MatchGenuine(normalized); ok {
		return &Verdict{
			Label:      labelSafe,
			Confidence: GenuineConfidence,
			Reason:     fmt.Sprintf("Classified as SAFE by genuine-phrase rule (%q).", phrase),
			Rule:       RuleGenuinePhrase,
		}
	}

	// 4. Short-message default, guarded by scam keywords. A short message
	// carrying a keyword ("free otp now") must reach the model instead of
	// being waved through.
	if textnorm.TokenCount(normalized) <= MaxShortTokens || len(normalized) < MinSafeLength {
		if e.registry.ContainsScamKeyword(normalized) {
			return nil
		}
		return &Verdict{
			Label:      labelSafe,
			Confidence: ShortConfidence,
			Reason:     "Short message with no scam indicators; classified as SAFE by rule.",
			Rule:       RuleShortMessage,
		}
	}

	// 5. No rule matched; defer to the classifier.
	return nil
}

func (e *Engine) allGreetingTokens(normalized string) bool {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 || len(tokens) > MaxGreetingTokens {
		return false
	}
	for _, tok := range tokens {
		if !e.registry.IsGreetingToken(tok) {
			return false
		}
	}
	return true
}
