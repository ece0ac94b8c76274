// Package textnorm provides the canonical text normalization used by every
// matching layer in the engine. The phrase registries, the rule engine, and
// the classifier adapter all see text through this one transformation, so a
// phrase is matchable if and only if its normalized form equals the
// normalized form of the candidate text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// normalizer lowercases every rune and drops everything that is not an ASCII
// lowercase letter or whitespace. Digits, punctuation, and non-ASCII letters
// are removed entirely rather than replaced with a space, so the letters on
// either side fuse: "win$1000now" normalizes to "winnow". Established quirk,
// the training data was cleaned the same way.
var normalizer = transform.Chain(
	runes.Map(unicode.ToLower),
	runes.Remove(runes.Predicate(func(r rune) bool {
		if r >= 'a' && r <= 'z' {
			return false
		}
		return !unicode.IsSpace(r)
	})),
)

// Normalize canonicalizes text: lowercase, strip everything outside
// [a-z] and whitespace, collapse whitespace runs to single spaces, and trim.
// The empty string is a valid result (input had no letters).
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	out, _, err := transform.String(normalizer, text)
	if err != nil {
		// runes transforms never fail on valid input; invalid UTF-8 runes
		// map to RuneError which is removed anyway. Fall back to a manual
		// pass rather than returning unnormalized text.
		out = fallbackStrip(text)
	}
	return strings.Join(strings.Fields(out), " ")
}

// TokenCount returns the number of whitespace-delimited tokens in
// already-normalized text.
func TokenCount(normalized string) int {
	return len(strings.Fields(normalized))
}

func fallbackStrip(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
