// Package themes maps extracted keywords onto a fixed taxonomy of
// review themes via case-insensitive substring rules.
package themes

import (
	"sort"
	"strings"
)

// FallbackTheme is assigned when no taxonomy rule matches.
const FallbackTheme = "Miscellaneous"

// rule binds a lowercase substring pattern to a theme. Rules are
// evaluated in slice order; overlapping patterns may match the same
// keyword to several themes, all of which are kept.
type rule struct {
	pattern string
	theme   string
}

var taxonomy = []rule{
	{"login", "Account Access Issues"},
	{"log", "Account Access Issues"}, // catches "log in" after stopword removal
	{"password", "Account Access Issues"},
	{"crash", "Reliability"},
	{"slow", "Transaction Performance"},
	{"support", "Customer Support"},
	{"interface", "User Experience"},
	{"design", "User Experience"},
	{"feature", "Feature Requests"},
	{"update", "Feature Requests"},
}

// Assign returns the distinct themes matched by the keywords, sorted
// alphabetically. When nothing matches it returns exactly
// [FallbackTheme], so the result is never empty.
func Assign(keywords []string) []string {
	matched := map[string]struct{}{}
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for _, r := range taxonomy {
			if strings.Contains(lower, r.pattern) {
				matched[r.theme] = struct{}{}
			}
		}
	}

	if len(matched) == 0 {
		return []string{FallbackTheme}
	}

	out := make([]string, 0, len(matched))
	for theme := range matched {
		out = append(out, theme)
	}
	sort.Strings(out)
	return out
}
