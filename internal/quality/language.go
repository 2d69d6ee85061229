package quality

import (
	"strings"
	"unicode"

	"ReviewInsights/internal/textproc"
)

// minDetectLetters is the minimum letter count for a detection verdict.
const minDetectLetters = 3

// commonEnglish supplements the stopword list with high-frequency
// review vocabulary so short reviews still register as English.
var commonEnglish = map[string]struct{}{
	"hello": {}, "hi": {}, "thanks": {}, "thank": {}, "please": {},
	"good": {}, "great": {}, "bad": {}, "nice": {}, "best": {}, "worst": {},
	"app": {}, "bank": {}, "banking": {}, "money": {}, "account": {},
	"love": {}, "hate": {}, "like": {}, "work": {}, "works": {}, "working": {},
	"slow": {}, "fast": {}, "easy": {}, "use": {}, "update": {}, "crash": {},
	"not": {}, "english": {}, "transfer": {}, "login": {}, "service": {},
	// words the emoji substitution pass emits
	"happy": {}, "sad": {}, "angry": {}, "excellent": {}, "funny": {},
	"playful": {}, "disappointed": {}, "star": {},
}

// DetectEnglish is a charset-plus-lexicon heuristic: the text must be
// predominantly Latin script and contain at least one recognizably
// English token. ok is false when the text is too short to judge;
// callers treat that as a non-match.
func DetectEnglish(text string) (english, ok bool) {
	letters := 0
	latin := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r < 0x250 { // Latin plus Latin-1/Extended letters
			latin++
		}
	}
	if letters < minDetectLetters {
		return false, false
	}
	if float64(latin)/float64(letters) < 0.9 {
		return false, true
	}

	for _, raw := range strings.Fields(strings.ToLower(text)) {
		tok := strings.TrimFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) })
		if tok == "" {
			continue
		}
		if textproc.IsStopword(tok) {
			return true, true
		}
		if _, hit := commonEnglish[tok]; hit {
			return true, true
		}
	}
	return false, true
}
