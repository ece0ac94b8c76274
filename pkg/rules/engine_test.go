package rules

import (
	"testing"

	"github.com/scamwatch/scamwatch/pkg/phrases"
	"github.com/scamwatch/scamwatch/pkg/textnorm"
)

func newTestEngine() *Engine {
	return New(phrases.NewRegistry(phrases.DefaultLists()))
}

func TestApplyRuleMatches(t *testing.T) {
	e := newTestEngine()

	testCases := []struct {
		name           string
		text           string
		wantRule       string
		wantConfidence float64
	}{
		{"exact greeting", "hi", RuleGreeting, GreetingConfidence},
		{"exact greeting phrase", "good morning", RuleGreeting, GreetingConfidence},
		{"greeting with punctuation", "How are you?", RuleGreeting, GreetingConfidence},
		{"unlisted greeting combination", "hi good morning", RuleGreetingTokens, GreetingConfidence},
		{"longer greeting combination", "hello there hope you are well", RuleGreetingTokens, GreetingConfidence},
		{"genuine phrase exact", "payment received", RuleGenuinePhrase, GenuineConfidence},
		{"genuine phrase embedded", "payment received for invoice #445, thanks!", RuleGenuinePhrase, GenuineConfidence},
		{"short benign message", "lunch at noon", RuleShortMessage, ShortConfidence},
		{"single word", "cool", RuleShortMessage, ShortConfidence},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := e.Apply(textnorm.Normalize(tc.text))
			if v == nil {
				t.Fatalf("Apply(%q) = nil, want rule %s", tc.text, tc.wantRule)
			}
			if v.Rule != tc.wantRule {
				t.Errorf("Apply(%q) fired rule %s, want %s", tc.text, v.Rule, tc.wantRule)
			}
			if v.Confidence != tc.wantConfidence {
				t.Errorf("Apply(%q) confidence = %v, want %v", tc.text, v.Confidence, tc.wantConfidence)
			}
			if v.Label != "SAFE" {
				t.Errorf("Apply(%q) label = %s, want SAFE", tc.text, v.Label)
			}
		})
	}
}

func TestApplyDefersToClassifier(t *testing.T) {
	e := newTestEngine()

	testCases := []struct {
		name string
		text string
	}{
		{"short with scam keyword", "free otp now"},
		{"short keyword only", "otp"},
		{"short urgent keyword", "urgent reply"},
		{"long non-matching message", "please transfer the amount before the deadline or your services will stop"},
		{"seventh greeting token breaks the window", "hi hello hey good morning good evening"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if v := e.Apply(textnorm.Normalize(tc.text)); v != nil {
				t.Errorf("Apply(%q) = %+v, want nil (defer to classifier)", tc.text, v)
			}
		})
	}
}

// A message matching both the genuine-phrase rule and the short-message
// default must resolve via the genuine-phrase rule (0.99, not 0.98).
func TestRulePriorityGenuineOverShort(t *testing.T) {
	e := newTestEngine()

	v := e.Apply(textnorm.Normalize("on my way"))
	if v == nil {
		t.Fatal("expected a rule to fire for 'on my way'")
	}
	if v.Rule != RuleGenuinePhrase {
		t.Errorf("fired rule %s, want %s", v.Rule, RuleGenuinePhrase)
	}
	if v.Confidence != GenuineConfidence {
		t.Errorf("confidence = %v, want %v", v.Confidence, GenuineConfidence)
	}
}

// The keyword guard must win over the length shortcut for every short
// message containing a scam keyword.
func TestKeywordGuardOnShortMessages(t *testing.T) {
	e := newTestEngine()

	shortScams := []string{
		"free otp now",
		"claim prize",
		"verify account",
		"kyc blocked",
		"win cash",
	}

	for _, text := range shortScams {
		norm := textnorm.Normalize(text)
		if textnorm.TokenCount(norm) > MaxShortTokens && len(norm) >= MinSafeLength {
			t.Fatalf("test input %q is not short", text)
		}
		if v := e.Apply(norm); v != nil {
			t.Errorf("Apply(%q) = %+v, want nil (keyword guard)", text, v)
		}
	}
}

// The exact-greeting rule outranks the genuine-phrase rule: "thank you" is
// both a greeting and a prefix of genuine phrases.
func TestRulePriorityGreetingFirst(t *testing.T) {
	e := newTestEngine()

	v := e.Apply("thank you")
	if v == nil {
		t.Fatal("expected a rule to fire for 'thank you'")
	}
	if v.Rule != RuleGreeting {
		t.Errorf("fired rule %s, want %s", v.Rule, RuleGreeting)
	}
}
