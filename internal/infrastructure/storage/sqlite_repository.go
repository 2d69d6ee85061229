package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/ports"
)

// Open creates a SQLite database handle at the given path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// modernc sqlite serializes writes per connection; a single
	// connection avoids SQLITE_BUSY under concurrent batch saves.
	db.SetMaxOpenConns(1)
	return db, nil
}

// SQLiteRepository persists enriched reviews into SQLite with a
// normalized banks table.
type SQLiteRepository struct {
	db     *sql.DB
	banks  []string
	logger *slog.Logger
}

var _ ports.ReviewRepository = (*SQLiteRepository)(nil)

// NewSQLiteRepository wires a sql.DB handle and the banks to seed.
func NewSQLiteRepository(db *sql.DB, banks []string, logger *slog.Logger) *SQLiteRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepository{db: db, banks: banks, logger: logger}
}

// InitSchema creates the banks and reviews tables and seeds the
// configured bank names. It is idempotent.
func (r *SQLiteRepository) InitSchema(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("no database handle")
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS banks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bank_id INTEGER NOT NULL REFERENCES banks(id),
			review_text TEXT NOT NULL,
			cleaned_text TEXT NOT NULL,
			rating REAL NOT NULL,
			review_date TEXT,
			source TEXT,
			sentiment_label TEXT NOT NULL,
			sentiment_score REAL NOT NULL,
			keywords TEXT NOT NULL,
			themes TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_bank ON reviews(bank_id)`,
	}
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	for _, bank := range r.banks {
		_, err := sq.Insert("banks").
			Columns("name").
			Values(bank).
			Suffix("ON CONFLICT(name) DO NOTHING").
			RunWith(r.db).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("seed bank %s: %w", bank, err)
		}
	}

	return nil
}

// SaveBatch stores the whole batch in a single transaction. Rows whose
// bank is not seeded are skipped with a logged count; any other failure
// rolls the entire batch back.
func (r *SQLiteRepository) SaveBatch(ctx context.Context, reviews []domain.EnrichedReview) error {
	if r.db == nil {
		return fmt.Errorf("no database handle")
	}
	if len(reviews) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	bankIDs, err := r.bankIDs(ctx, tx)
	if err != nil {
		return err
	}

	skipped := 0
	for _, review := range reviews {
		bankID, ok := bankIDs[review.Bank]
		if !ok {
			skipped++
			continue
		}

		keywords, err := json.Marshal(review.Keywords)
		if err != nil {
			return fmt.Errorf("marshal keywords: %w", err)
		}
		themes, err := json.Marshal(review.Themes)
		if err != nil {
			return fmt.Errorf("marshal themes: %w", err)
		}

		var reviewDate any
		if !review.Date.IsZero() {
			reviewDate = review.Date.UTC().Format(time.RFC3339)
		}

		_, err = sq.Insert("reviews").
			Columns("bank_id", "review_text", "cleaned_text", "rating", "review_date",
				"source", "sentiment_label", "sentiment_score", "keywords", "themes").
			Values(bankID, review.Text, review.CleanedText, review.Rating, reviewDate,
				review.Source, review.SentimentLabel, review.SentimentScore,
				string(keywords), string(themes)).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	if skipped > 0 {
		r.logger.Warn("skipped reviews for unknown banks", "count", skipped)
	}
	r.logger.Info("saved review batch", "rows", len(reviews)-skipped)
	return nil
}

// LoadEnriched returns every stored review joined with its bank name.
func (r *SQLiteRepository) LoadEnriched(ctx context.Context) ([]domain.EnrichedReview, error) {
	if r.db == nil {
		return nil, fmt.Errorf("no database handle")
	}

	rows, err := sq.Select("b.name", "r.review_text", "r.cleaned_text", "r.rating",
		"r.review_date", "r.source", "r.sentiment_label", "r.sentiment_score",
		"r.keywords", "r.themes").
		From("reviews r").
		Join("banks b ON b.id = r.bank_id").
		OrderBy("r.id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var out []domain.EnrichedReview
	for rows.Next() {
		var (
			review   domain.EnrichedReview
			date     sql.NullString
			source   sql.NullString
			keywords string
			themes   string
		)
		if err := rows.Scan(&review.Bank, &review.Text, &review.CleanedText, &review.Rating,
			&date, &source, &review.SentimentLabel, &review.SentimentScore,
			&keywords, &themes); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if date.Valid {
			if parsed, err := time.Parse(time.RFC3339, date.String); err == nil {
				review.Date = parsed
			}
		}
		if source.Valid {
			review.Source = source.String
		}
		if err := json.Unmarshal([]byte(keywords), &review.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
		if err := json.Unmarshal([]byte(themes), &review.Themes); err != nil {
			return nil, fmt.Errorf("decode themes: %w", err)
		}
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return out, nil
}

func (r *SQLiteRepository) bankIDs(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := sq.Select("id", "name").From("banks").RunWith(tx).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query banks: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		ids[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return ids, nil
}
