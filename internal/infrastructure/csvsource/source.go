// Package csvsource loads raw review batches from CSV exports, the
// offline alternative to live store scraping.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/ports"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

// Source reads reviews from a headered CSV file. Recognized columns:
// review or review_text, rating, date or review_date, bank, source.
type Source struct {
	path   string
	logger *slog.Logger
}

var _ ports.ReviewSource = (*Source)(nil)

// NewSource wires a CSV file path.
func NewSource(path string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{path: path, logger: logger}
}

// FetchReviews parses the whole file. Rows with the wrong field count
// are skipped with a logged count; a missing header is fatal.
func (s *Source) FetchReviews(ctx context.Context) ([]domain.RawReview, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := columnIndexes(header)
	if cols.text < 0 {
		return nil, fmt.Errorf("csv %s has no review column", s.path)
	}

	var (
		reviews []domain.RawReview
		skipped int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		if len(record) != len(header) {
			skipped++
			continue
		}

		reviews = append(reviews, recordToReview(record, cols))
	}

	if skipped > 0 {
		s.logger.Warn("skipped malformed csv rows", "count", skipped)
	}
	s.logger.Info("loaded csv reviews", "path", s.path, "count", len(reviews))
	return reviews, nil
}

type indexes struct {
	text, rating, date, bank, source int
}

func columnIndexes(header []string) indexes {
	cols := indexes{text: -1, rating: -1, date: -1, bank: -1, source: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "review", "review_text":
			cols.text = i
		case "rating":
			cols.rating = i
		case "date", "review_date":
			cols.date = i
		case "bank":
			cols.bank = i
		case "source":
			cols.source = i
		}
	}
	return cols
}

func recordToReview(record []string, cols indexes) domain.RawReview {
	var r domain.RawReview
	r.Text = strings.TrimSpace(record[cols.text])
	if cols.rating >= 0 {
		r.Rating, _ = strconv.ParseFloat(strings.TrimSpace(record[cols.rating]), 64)
	}
	if cols.date >= 0 {
		raw := strings.TrimSpace(record[cols.date])
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				r.Date = parsed.UTC()
				break
			}
		}
	}
	if cols.bank >= 0 {
		r.Bank = strings.TrimSpace(record[cols.bank])
	}
	if cols.source >= 0 {
		r.Source = strings.TrimSpace(record[cols.source])
	}
	return r
}
