package textproc

import (
	"strings"
	"testing"
	"unicode"
)

func TestNormalizeValidCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input any
		want  string
	}{
		{"uppercase and punctuation", "Best Mobile Banking App EVER!", "good mobile bank app"},
		{"contractions and stopwords", "It was good, but it doesn't work right.", "good work right"},
		{"emoji only", "👌👍", ""},
		{"empty", "", ""},
		{"nil input", nil, ""},
		{"unknown word passthrough", "dedeb", "dedeb"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tc.input)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeStringifiesNonStrings(t *testing.T) {
	t.Parallel()

	if got := Normalize(1234); got != "1234" {
		t.Fatalf("expected 1234, got %q", got)
	}
	if got := Normalize(true); got != "true" {
		t.Fatalf("expected true, got %q", got)
	}
}

func TestNormalizeRemovesStopwords(t *testing.T) {
	t.Parallel()

	got := Normalize("This is an example of a sentence with many stopwords.")
	for _, banned := range []string{"this", "is", "an", "of", "a", "with"} {
		for _, tok := range strings.Fields(got) {
			if tok == banned {
				t.Fatalf("stopword %q survived: %q", banned, got)
			}
		}
	}
	if !strings.Contains(got, "example") || !strings.Contains(got, "sentence") {
		t.Fatalf("content words dropped: %q", got)
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	t.Parallel()

	got := Normalize("Crashes CONSTANTLY!!! $$$ Can't even log-in... 😡")
	for _, r := range got {
		if unicode.IsUpper(r) {
			t.Fatalf("uppercase rune %q in %q", r, got)
		}
		if !isWordRune(r) && r != ' ' {
			t.Fatalf("non-word rune %q in %q", r, got)
		}
	}
}

func TestLemmaSuffixRules(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"crashes":      "crash",
		"stopped":      "stop",
		"transactions": "transaction",
		"slowly":       "slowly",
		"tries":        "try",
		"was":          "be",
		"best":         "good",
		"boxes":        "box",
		"miss":         "miss",
		"falling":      "fall",
	}
	for in, want := range cases {
		if got := Lemma(in); got != want {
			t.Fatalf("Lemma(%q) = %q, want %q", in, got, want)
		}
	}
}
