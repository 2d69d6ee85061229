// Package keywords ranks per-document salient terms with corpus-relative
// TF-IDF weighting over unigrams and bigrams.
package keywords

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// DefaultTopK is the keyword count per document when the caller
	// passes a non-positive value.
	DefaultTopK = 5

	// maxVocabulary caps the term space at the most frequent terms,
	// ties broken lexicographically.
	maxVocabulary = 1000

	minTokenRunes = 2
)

// Extract returns one keyword list per input text, most salient first.
// Documents that are empty or whitespace-only are excluded from the
// weighting corpus entirely but still receive an empty list at their
// original position. A document may yield fewer than topK keywords
// when it holds fewer distinct vocabulary terms. Identical inputs
// produce identical outputs.
func Extract(texts []string, topK int) [][]string {
	if topK <= 0 {
		topK = DefaultTopK
	}

	results := make([][]string, len(texts))
	for i := range results {
		results[i] = []string{}
	}

	docTerms := make([]map[string]int, 0, len(texts))
	docPos := make([]int, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		docTerms = append(docTerms, termCounts(text))
		docPos = append(docPos, i)
	}
	if len(docTerms) == 0 {
		return results
	}

	vocab := buildVocabulary(docTerms)
	idf := inverseDocFrequency(docTerms, vocab)

	for d, counts := range docTerms {
		type weighted struct {
			term  string
			score float64
		}
		scored := make([]weighted, 0, len(counts))
		for term, count := range counts {
			if _, inVocab := vocab[term]; !inVocab {
				continue
			}
			scored = append(scored, weighted{term: term, score: float64(count) * idf[term]})
		}

		// Score descending; equal scores fall back to reverse
		// lexicographic order, matching the reference ranking.
		sort.Slice(scored, func(a, b int) bool {
			if scored[a].score != scored[b].score {
				return scored[a].score > scored[b].score
			}
			return scored[a].term > scored[b].term
		})

		limit := min(topK, len(scored))
		keywords := make([]string, 0, limit)
		for _, w := range scored[:limit] {
			if w.score <= 0 {
				break
			}
			keywords = append(keywords, w.term)
		}
		results[docPos[d]] = keywords
	}

	return results
}

// termCounts tokenizes a document and counts its unigrams and bigrams.
func termCounts(text string) map[string]int {
	tokens := tokenize(text)
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}

// tokenize lowercases and splits on non-word runes, keeping tokens of
// at least two word characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	tokens := fields[:0:0]
	for _, f := range fields {
		if len([]rune(f)) >= minTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// buildVocabulary keeps the maxVocabulary most frequent terms across
// the corpus by total count, ties lexicographic ascending.
func buildVocabulary(docs []map[string]int) map[string]struct{} {
	totals := map[string]int{}
	for _, counts := range docs {
		for term, count := range counts {
			totals[term] += count
		}
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool {
		if totals[terms[a]] != totals[terms[b]] {
			return totals[terms[a]] > totals[terms[b]]
		}
		return terms[a] < terms[b]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		vocab[term] = struct{}{}
	}
	return vocab
}

// inverseDocFrequency computes smoothed IDF over the corpus:
// ln((1+n)/(1+df)) + 1, always positive.
func inverseDocFrequency(docs []map[string]int, vocab map[string]struct{}) map[string]float64 {
	df := make(map[string]int, len(vocab))
	for _, counts := range docs {
		for term := range counts {
			if _, ok := vocab[term]; ok {
				df[term]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}
