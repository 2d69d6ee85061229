package textproc

import "strings"

// irregular maps frequent irregular forms straight to their dictionary
// base. Checked before any suffix rule.
var irregular = map[string]string{
	"was": "be", "were": "be", "been": "be", "being": "be", "is": "be", "are": "be", "am": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do",
	"went": "go", "gone": "go", "going": "go",
	"made": "make", "making": "make",
	"said": "say", "says": "say",
	"got": "get", "gotten": "get", "getting": "get",
	"took": "take", "taken": "take", "taking": "take",
	"came": "come", "coming": "come",
	"gave": "give", "given": "give", "giving": "give",
	"better": "good", "best": "good",
	"worse": "bad", "worst": "bad",
	"children": "child", "people": "person",
	"men": "man", "women": "woman",
	"feet": "foot", "teeth": "tooth",
	"left": "leave", "kept": "keep", "lost": "lose",
	"sent": "send", "spent": "spend", "paid": "pay",
	"found": "find", "told": "tell", "sold": "sell",
	"crashes": "crash", "crashed": "crash", "crashing": "crash",
	"apps": "app", "updates": "update", "updated": "update", "updating": "update",
	"features": "feature", "transactions": "transaction",
	"loading": "load", "logged": "log", "logging": "log",
}

// Lemma reduces a lowercase token to its dictionary base form using an
// irregular-form table followed by ordered suffix rules. This is a
// tokenization-level lemmatizer: no syntactic context is consulted.
func Lemma(token string) string {
	if base, ok := irregular[token]; ok {
		return base
	}
	if len(token) <= 3 {
		return token
	}

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "xes"), strings.HasSuffix(token, "zes"),
		strings.HasSuffix(token, "ches"), strings.HasSuffix(token, "shes"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ss"), strings.HasSuffix(token, "us"), strings.HasSuffix(token, "is"):
		return token
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		return undouble(token[:len(token)-3])
	case strings.HasSuffix(token, "ied"):
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "ed") && len(token) > 4:
		return undouble(token[:len(token)-2])
	case strings.HasSuffix(token, "s"):
		return token[:len(token)-1]
	}

	return token
}

// undouble collapses a doubled final consonant left behind by -ed/-ing
// stripping (stopped -> stopp -> stop). Keeps legitimate doubles that
// are part of the stem (e.g. "fall" via "falling" -> "fall").
func undouble(stem string) string {
	n := len(stem)
	if n < 3 {
		return stem
	}
	last := stem[n-1]
	if last != stem[n-2] {
		return stem
	}
	switch last {
	case 'l', 's', 'z', 'f':
		return stem
	}
	return stem[:n-1]
}
