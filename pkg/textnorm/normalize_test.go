package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"uppercase", "HELLO There", "hello there"},
		{"digits and symbols fuse letters", "win$1000now", "winnow"},
		{"punctuation stripped", "payment received for invoice #445, thanks!", "payment received for invoice thanks"},
		{"whitespace collapsed", "  hi \t\n there  ", "hi there"},
		{"only specials", "!!!123...$$$", ""},
		{"empty", "", ""},
		{"non-ascii letters removed", "café über", "caf ber"},
		{"uppercase non-ascii removed", "Éric said hi", "ric said hi"},
		{"newlines are separators", "good\nmorning", "good morning"},
		{"apostrophes fuse", "i'm on my way", "im on my way"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"hi",
		"Win $1000 NOW!!!",
		"  spaced   out  text  ",
		"how are you?",
		"OTP: 123456 urgent",
		"héllo wörld",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestTokenCount(t *testing.T) {
	testCases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hi", 1},
		{"hi there friend", 3},
		{"payment received for invoice thanks", 5},
	}

	for _, tc := range testCases {
		if got := TokenCount(tc.in); got != tc.want {
			t.Errorf("TokenCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
