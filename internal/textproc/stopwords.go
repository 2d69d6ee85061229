package textproc

// stopwords holds English function words and high-frequency fillers
// that carry no signal for keyword or sentiment work. The list covers
// the common core of standard English stoplists; review-specific
// vocabulary is intentionally kept.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"i": {}, "me": {}, "my": {}, "mine": {}, "myself": {},
	"we": {}, "us": {}, "our": {}, "ours": {}, "ourselves": {},
	"you": {}, "your": {}, "yours": {}, "yourself": {},
	"he": {}, "him": {}, "his": {}, "himself": {},
	"she": {}, "her": {}, "hers": {}, "herself": {},
	"it": {}, "its": {}, "itself": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "themselves": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"who": {}, "whom": {}, "whose": {}, "which": {}, "what": {},
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "having": {},
	"do": {}, "does": {}, "did": {}, "doing": {},
	"will": {}, "would": {}, "shall": {}, "should": {},
	"can": {}, "could": {}, "may": {}, "might": {}, "must": {},
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"if": {}, "then": {}, "else": {}, "because": {}, "as": {}, "than": {},
	"of": {}, "at": {}, "by": {}, "for": {}, "with": {}, "about": {},
	"against": {}, "between": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "to": {},
	"from": {}, "up": {}, "down": {}, "in": {}, "out": {}, "on": {},
	"off": {}, "over": {}, "under": {}, "again": {}, "further": {},
	"here": {}, "there": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"all": {}, "any": {}, "both": {}, "each": {}, "few": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "such": {},
	"no": {}, "only": {}, "own": {}, "same": {},
	"too": {}, "very": {}, "just": {}, "ever": {},
	"s": {}, "t": {}, "d": {}, "ll": {}, "m": {}, "re": {}, "ve": {},
	"dont": {}, "doesnt": {}, "didnt": {}, "isnt": {}, "wasnt": {},
	"im": {}, "ive": {}, "cant": {}, "wont": {},
}

// IsStopword reports whether token is an English stopword. The token
// is expected to be lowercase.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
