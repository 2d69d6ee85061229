package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/ports"
)

// DumpingSource wraps a ReviewSource and writes each fetched raw batch
// to a CSV file before the pipeline cleans it. A dump failure is logged
// and does not fail the fetch.
type DumpingSource struct {
	inner  ports.ReviewSource
	path   string
	logger *slog.Logger
}

var _ ports.ReviewSource = (*DumpingSource)(nil)

// NewDumpingSource wraps inner with a raw CSV dump at path.
func NewDumpingSource(inner ports.ReviewSource, path string, logger *slog.Logger) *DumpingSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &DumpingSource{inner: inner, path: path, logger: logger}
}

// FetchReviews delegates to the wrapped source and dumps the result.
func (s *DumpingSource) FetchReviews(ctx context.Context) ([]domain.RawReview, error) {
	reviews, err := s.inner.FetchReviews(ctx)
	if err != nil {
		return nil, err
	}

	if err := WriteReviews(s.path, reviews); err != nil {
		s.logger.Warn("raw review dump failed", "path", s.path, "error", err)
	} else {
		s.logger.Info("dumped raw reviews", "path", s.path, "count", len(reviews))
	}

	return reviews, nil
}

// WriteReviews writes raw reviews as a headered CSV file readable by
// Source.
func WriteReviews(path string, reviews []domain.RawReview) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"review", "rating", "date", "bank", "source"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range reviews {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.UTC().Format(time.RFC3339)
		}
		record := []string{
			r.Text,
			strconv.FormatFloat(r.Rating, 'f', -1, 64),
			date,
			r.Bank,
			r.Source,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
