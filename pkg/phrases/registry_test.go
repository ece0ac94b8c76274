package phrases

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRegistrySizes(t *testing.T) {
	r := NewRegistry(DefaultLists())

	greetings, vocab, genuine, keywords := r.Counts()
	if greetings < 10 {
		t.Errorf("expected at least 10 greetings, got %d", greetings)
	}
	if vocab < 15 {
		t.Errorf("expected at least 15 greeting vocab words, got %d", vocab)
	}
	if genuine < 20 {
		t.Errorf("expected at least 20 genuine phrases, got %d", genuine)
	}
	if keywords < 10 {
		t.Errorf("expected at least 10 scam keywords, got %d", keywords)
	}
}

// Raw phrases are normalized at build time with the same transformation
// applied to messages, so punctuation or casing in the authored lists never
// breaks matching.
func TestRegistryNormalizesRawPhrases(t *testing.T) {
	r := NewRegistry(Lists{
		Greetings: []string{"How are you?", "  HELLO  "},
		Genuine:   []string{"I'm on my way!"},
	})

	if !r.IsGreeting("how are you") {
		t.Error("expected normalized greeting 'how are you' to match raw 'How are you?'")
	}
	if !r.IsGreeting("hello") {
		t.Error("expected 'hello' to match padded uppercase raw entry")
	}
	if phrase, ok := r.MatchGenuine("hey im on my way now"); !ok || phrase != "im on my way" {
		t.Errorf("expected genuine match 'im on my way', got %q ok=%v", phrase, ok)
	}
}

func TestRegistryDropsEmptyEntries(t *testing.T) {
	r := NewRegistry(Lists{
		Greetings:    []string{"!!!", "123"},
		ScamKeywords: []string{"$$$"},
	})

	if r.IsGreeting("") {
		t.Error("entries that normalize to empty must not register")
	}
	if r.ContainsScamKeyword("anything at all") {
		t.Error("empty keyword must not match every message")
	}
}

func TestMatchGenuineSubstring(t *testing.T) {
	r := NewRegistry(DefaultLists())

	testCases := []struct {
		name      string
		text      string
		wantMatch bool
	}{
		{"embedded phrase", "payment received for invoice thanks", true},
		{"exact phrase", "payment received", true},
		{"no phrase", "your parcel is held at customs", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := r.MatchGenuine(tc.text)
			if ok != tc.wantMatch {
				t.Errorf("MatchGenuine(%q) = %v, want %v", tc.text, ok, tc.wantMatch)
			}
		})
	}
}

func TestContainsScamKeyword(t *testing.T) {
	r := NewRegistry(DefaultLists())

	if !r.ContainsScamKeyword("free otp now") {
		t.Error("expected 'free otp now' to contain a scam keyword")
	}
	if r.ContainsScamKeyword("see you at lunch") {
		t.Error("expected 'see you at lunch' to be keyword-free")
	}
}

func TestLoadFileMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phrases.yaml")
	content := []byte(`greetings:
  - "namaste"
genuine:
  - "Order delivered!"
scam_keywords:
  - "crypto giveaway"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write temp phrase file: %v", err)
	}

	extra, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	r := NewRegistry(DefaultLists().Merge(extra))

	if !r.IsGreeting("namaste") {
		t.Error("expected merged greeting 'namaste'")
	}
	if !r.IsGreeting("hello") {
		t.Error("expected built-in greeting to survive the merge")
	}
	if _, ok := r.MatchGenuine("your order delivered today"); !ok {
		t.Error("expected merged genuine phrase to match")
	}
	if !r.ContainsScamKeyword("crypto giveaway inside") {
		t.Error("expected merged scam keyword to match")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing phrase file")
	}
}
