// Package phrases holds the static phrase registries consumed by the rule
// engine: known greetings, a closed greeting vocabulary, known genuine
// phrases, and scam-indicator keywords.
//
// Design principles:
// - BUILD ONCE: registries are constructed at startup and read-only after
// - NORMALIZED: every raw phrase passes through textnorm.Normalize, the same
//   transformation applied to incoming messages, so matching is exact
// - EXPLICIT: no package-level mutable state; the registry is constructed
//   and injected into the rule engine
package phrases

import (
	"strings"

	"github.com/scamwatch/scamwatch/pkg/textnorm"
)

// Lists is the raw, human-authored input to a Registry. Phrases may carry
// any casing or punctuation; they are normalized during construction.
type Lists struct {
	// Greetings are matched exactly against the whole normalized message.
	Greetings []string `yaml:"greetings"`

	// GreetingVocab is the closed set of single words that make up
	// conversational greetings ("hi", "good", "morning", ...). A short
	// message whose tokens all come from this set is treated as a greeting
	// even when the exact combination is not listed in Greetings.
	GreetingVocab []string `yaml:"greeting_vocab"`

	// Genuine phrases are matched by substring containment, so a long
	// message embedding "payment received" anywhere is still covered.
	Genuine []string `yaml:"genuine"`

	// ScamKeywords guard the short-message rule: a short message containing
	// any of these is never defaulted to SAFE and goes to the model.
	ScamKeywords []string `yaml:"scam_keywords"`
}

// Merge appends other's entries onto l. Duplicates are tolerated; the
// registry deduplicates during construction.
func (l Lists) Merge(other Lists) Lists {
	l.Greetings = append(l.Greetings, other.Greetings...)
	l.GreetingVocab = append(l.GreetingVocab, other.GreetingVocab...)
	l.Genuine = append(l.Genuine, other.Genuine...)
	l.ScamKeywords = append(l.ScamKeywords, other.ScamKeywords...)
	return l
}

// Registry is the immutable, normalized form of Lists. Safe for unlimited
// concurrent readers; never mutated after NewRegistry returns.
type Registry struct {
	greetings     map[string]struct{}
	greetingVocab map[string]struct{}
	genuine       []string
	scamKeywords  []string
}

// NewRegistry normalizes and deduplicates the raw lists. Entries that
// normalize to the empty string are dropped.
func NewRegistry(lists Lists) *Registry {
	r := &Registry{
		greetings:     normalizeSet(lists.Greetings),
		greetingVocab: normalizeSet(lists.GreetingVocab),
		genuine:       normalizeSlice(lists.Genuine),
		scamKeywords:  normalizeSlice(lists.ScamKeywords),
	}
	return r
}

// IsGreeting reports whether the normalized message is a known greeting.
func (r *Registry) IsGreeting(normalized string) bool {
	_, ok := r.greetings[normalized]
	return ok
}

// IsGreetingToken reports whether a single normalized token belongs to the
// greeting vocabulary.
func (r *Registry) IsGreetingToken(token string) bool {
	_, ok := r.greetingVocab[token]
	return ok
}

// MatchGenuine returns the first genuine phrase contained in the normalized
// message, if any.
func (r *Registry) MatchGenuine(normalized string) (string, bool) {
	for _, phrase := range r.genuine {
		if strings.Contains(normalized, phrase) {
			return phrase, true
		}
	}
	return "", false
}

// ContainsScamKeyword reports whether the normalized message contains any
// scam-indicator keyword as a substring.
func (r *Registry) ContainsScamKeyword(normalized string) bool {
	for _, kw := range r.scamKeywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Counts returns the registry sizes (greetings, vocab, genuine, keywords)
// for startup logging.
func (r *Registry) Counts() (int, int, int, int) {
	return len(r.greetings), len(r.greetingVocab), len(r.genuine), len(r.scamKeywords)
}

func normalizeSet(raw []string) map[string]struct{} {
	set := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		if n := textnorm.Normalize(s); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func normalizeSlice(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		n := textnorm.Normalize(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
