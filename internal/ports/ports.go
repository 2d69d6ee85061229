package ports

import (
	"context"
	"time"

	"ReviewInsights/internal/domain"
)

// ReviewSource pulls raw reviews from an upstream provider (store
// scraper, CSV batch, ...).
type ReviewSource interface {
	FetchReviews(ctx context.Context) ([]domain.RawReview, error)
}

// ReviewRepository persists enriched reviews and serves them back for
// aggregation. SaveBatch is batch-atomic: all rows of one pipeline run
// commit together or the whole call fails.
type ReviewRepository interface {
	InitSchema(ctx context.Context) error
	SaveBatch(ctx context.Context, reviews []domain.EnrichedReview) error
	LoadEnriched(ctx context.Context) ([]domain.EnrichedReview, error)
}

// SentimentModel is the binary positive/negative classifier backend.
// It never emits a neutral label.
type SentimentModel interface {
	Classify(ctx context.Context, text string) (label string, score float64, err error)
}

// Translator is the single-call machine-translation contract. Target
// is an ISO 639-1 code.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Notifier publishes insight digests to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Recommender turns per-bank insights into written recommendations.
type Recommender interface {
	Recommend(ctx context.Context, insights []domain.BankInsight) (string, error)
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
