package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"ReviewInsights/internal/analytics"
	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/keywords"
	"ReviewInsights/internal/ports"
	"ReviewInsights/internal/quality"
	"ReviewInsights/internal/sentiment"
	"ReviewInsights/internal/textproc"
	"ReviewInsights/internal/themes"
)

// PipelineDeps wires all driven adapters into the enrichment pipeline.
type PipelineDeps struct {
	Source      ports.ReviewSource
	Repository  ports.ReviewRepository
	Classifier  *sentiment.Classifier
	Translator  ports.Translator
	Notifier    ports.Notifier
	Recommender ports.Recommender
	Logger      *slog.Logger
	TopK        int
	TopN        int

	// EmojiOverrides extends the built-in emoji-to-word map.
	EmojiOverrides map[string]string
}

// Pipeline runs the linear batch workflow:
// Load -> Prepare -> Normalize -> Classify -> ExtractKeywords ->
// AssignThemes -> Persist (-> Report). Every stage consumes the full
// output of the previous one; row correspondence is positional
// throughout.
type Pipeline struct {
	source      ports.ReviewSource
	repository  ports.ReviewRepository
	classifier  *sentiment.Classifier
	translator  ports.Translator
	notifier    ports.Notifier
	recommender ports.Recommender
	logger      *slog.Logger
	topK        int
	topN        int
	emojiMap    map[string]string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	topK := deps.TopK
	if topK <= 0 {
		topK = keywords.DefaultTopK
	}
	topN := deps.TopN
	if topN <= 0 {
		topN = analytics.DefaultTopN
	}
	return &Pipeline{
		source:      deps.Source,
		repository:  deps.Repository,
		classifier:  deps.Classifier,
		translator:  deps.Translator,
		notifier:    deps.Notifier,
		recommender: deps.Recommender,
		logger:      logger,
		topK:        topK,
		topN:        topN,
		emojiMap:    mergeEmojiMap(deps.EmojiOverrides),
	}
}

func mergeEmojiMap(overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return nil
	}
	merged := make(map[string]string, len(quality.DefaultEmojiMap)+len(overrides))
	for glyph, word := range quality.DefaultEmojiMap {
		merged[glyph] = word
	}
	for glyph, word := range overrides {
		merged[glyph] = word
	}
	return merged
}

// Run executes one full batch. A Load or Persist failure is fatal and
// aborts the run with the stage name in the error; per-row classifier
// failures degrade to the neutral fallback instead.
func (p *Pipeline) Run(ctx context.Context) ([]domain.EnrichedReview, error) {
	if p.source == nil {
		return nil, fmt.Errorf("load: no review source configured")
	}

	raw, err := p.source.FetchReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	p.logger.Info("loaded reviews", "count", len(raw))
	if len(raw) == 0 {
		return nil, nil
	}

	prepared := p.prepare(ctx, raw)
	p.logger.Info("prepared reviews", "count", len(prepared), "dropped", len(raw)-len(prepared))

	cleaned := make([]string, len(prepared))
	for i, r := range prepared {
		cleaned[i] = textproc.Normalize(r.Text)
	}

	labels := make([]string, len(prepared))
	scores := make([]float64, len(prepared))
	for i := range prepared {
		labels[i], scores[i] = p.classifier.SafeAnalyze(ctx, cleaned[i])
	}

	keywordLists := keywords.Extract(cleaned, p.topK)

	enriched := make([]domain.EnrichedReview, len(prepared))
	for i, r := range prepared {
		enriched[i] = domain.EnrichedReview{
			RawReview:      r,
			CleanedText:    cleaned[i],
			SentimentLabel: labels[i],
			SentimentScore: scores[i],
			Keywords:       keywordLists[i],
			Themes:         themes.Assign(keywordLists[i]),
		}
	}

	if p.repository != nil {
		if err := p.repository.SaveBatch(ctx, enriched); err != nil {
			return nil, fmt.Errorf("persist: %w", err)
		}
	}

	if err := p.report(ctx, enriched); err != nil {
		// Reporting sits past the terminal persistence state; its
		// failure does not invalidate the stored batch.
		p.logger.Warn("report stage failed", "error", err)
	}

	return enriched, nil
}

// prepare runs the data-quality passes over the raw batch: hygiene,
// dedup, required fields, emoji substitution, translation, and the
// English filter. All passes are best-effort.
func (p *Pipeline) prepare(ctx context.Context, raw []domain.RawReview) []domain.RawReview {
	table := tableFromReviews(raw)
	cleaner := quality.NewCleaner(table, p.translator, p.logger.With("component", "quality"))

	cleaner.Clean()
	cleaner.DropDuplicates(quality.KeepFirst)
	cleaner.DropRowsWithMissingIn([]string{"review_text", "rating"})
	cleaner.ReplaceEmojisWithText("review_text", p.emojiMap)
	if p.translator != nil {
		cleaner.TranslateNonEnglish(ctx, "review_text")
	}
	cleaner.FilterEnglishText("review_text")

	return reviewsFromTable(cleaner.Table())
}

func tableFromReviews(raw []domain.RawReview) *quality.Table {
	columns := []string{"review_text", "rating", "review_date", "bank", "source"}
	rows := make([][]quality.Cell, len(raw))
	for i, r := range raw {
		text := quality.Missing
		if r.Text != "" {
			text = quality.NewCell(r.Text)
		}
		date := quality.Missing
		if !r.Date.IsZero() {
			date = quality.NewCell(r.Date.UTC().Format(time.RFC3339))
		}
		rows[i] = []quality.Cell{
			text,
			quality.NewCell(strconv.FormatFloat(r.Rating, 'f', -1, 64)),
			date,
			quality.NewCell(r.Bank),
			quality.NewCell(r.Source),
		}
	}
	return quality.NewTable(columns, rows)
}

func reviewsFromTable(t *quality.Table) []domain.RawReview {
	textIdx := t.ColumnIndex("review_text")
	ratingIdx := t.ColumnIndex("rating")
	dateIdx := t.ColumnIndex("review_date")
	bankIdx := t.ColumnIndex("bank")
	sourceIdx := t.ColumnIndex("source")

	out := make([]domain.RawReview, 0, len(t.Rows))
	for _, row := range t.Rows {
		var r domain.RawReview
		if textIdx >= 0 && row[textIdx].Valid {
			r.Text = row[textIdx].Value
		}
		if ratingIdx >= 0 && row[ratingIdx].Valid {
			r.Rating, _ = strconv.ParseFloat(row[ratingIdx].Value, 64)
		}
		if dateIdx >= 0 && row[dateIdx].Valid {
			r.Date, _ = time.Parse(time.RFC3339, row[dateIdx].Value)
		}
		if bankIdx >= 0 && row[bankIdx].Valid {
			r.Bank = row[bankIdx].Value
		}
		if sourceIdx >= 0 && row[sourceIdx].Valid {
			r.Source = row[sourceIdx].Value
		}
		out = append(out, r)
	}
	return out
}

// report aggregates reviews into per-bank insights and pushes the
// digest to the configured channels. When a repository is wired the
// aggregate covers everything stored, not just the current batch.
func (p *Pipeline) report(ctx context.Context, enriched []domain.EnrichedReview) error {
	if p.notifier == nil && p.recommender == nil {
		return nil
	}

	if p.repository != nil {
		stored, err := p.repository.LoadEnriched(ctx)
		if err != nil {
			return fmt.Errorf("load stored reviews: %w", err)
		}
		enriched = stored
	}

	analyzer := analytics.New(enriched, p.logger.With("component", "analyzer"))
	insights := analyzer.PerBank(p.topN)
	digest := analytics.Digest(insights)

	if p.recommender != nil {
		recommendations, err := p.recommender.Recommend(ctx, insights)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		digest += "\n\nRecommendations:\n" + recommendations
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, digest); err != nil {
			return fmt.Errorf("publish digest: %w", err)
		}
	}
	return nil
}
