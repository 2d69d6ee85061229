package domain

import "time"

// RawReview is a single app-store review as captured by a collector.
// Immutable once captured; consumed exactly once by the quality layer.
type RawReview struct {
	Text   string
	Rating float64
	Date   time.Time
	Bank   string
	Source string
}

// Sentiment labels emitted by the pipeline. The classifier itself is
// binary; Neutral exists only for the fail-safe fallback path.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// EnrichedReview is a review after the full normalize/classify/extract
// pass. Created once by the orchestrator, immutable afterwards, and
// persisted as a single row.
type EnrichedReview struct {
	RawReview

	CleanedText    string
	SentimentLabel string
	SentimentScore float64
	Keywords       []string
	Themes         []string
}

// ThemeCount pairs a theme with its review count, ordered most
// frequent first.
type ThemeCount struct {
	Theme string
	Count int
}

// BankInsight aggregates top positive and negative themes for one
// bank. Derived on demand from the enriched collection, never stored.
type BankInsight struct {
	Bank          string
	TopDrivers    []ThemeCount
	TopPainPoints []ThemeCount
}

// ThemeStat is one row of the flat (bank, sentiment, theme, count)
// export used for downstream storage and visualization.
type ThemeStat struct {
	Bank      string
	Sentiment string
	Theme     string
	Count     int
}
