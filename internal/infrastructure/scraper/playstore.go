package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/scanner"
)

const defaultPageSize = 40

var reviewDateLayouts = []string{"2006-01-02", "January 2, 2006", "Jan 2, 2006"}

// PlayStoreScraper crawls paginated app review pages and extracts raw
// reviews per bank.
type PlayStoreScraper struct {
	client   *http.Client
	pageSize int
	logger   *slog.Logger
}

// NewPlayStoreScraper wires an HTTP client; pageSize defaults to 40.
func NewPlayStoreScraper(client *http.Client, logger *slog.Logger) *PlayStoreScraper {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayStoreScraper{client: client, pageSize: defaultPageSize, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *PlayStoreScraper) Name() string {
	return "playstore"
}

// Scrape walks each bank's review pages until a page comes back short,
// deduplicating on (text, date, bank). Banks that end up below the
// requested minimum are reported with a warning, not an error.
func (s *PlayStoreScraper) Scrape(ctx context.Context, req scanner.Request) ([]domain.RawReview, error) {
	if len(req.Targets) == 0 {
		return nil, fmt.Errorf("no app targets provided for store %s", req.StoreName)
	}

	results := make([]domain.RawReview, 0)
	seen := map[string]struct{}{}

	for _, target := range req.Targets {
		collected := 0
		page := 0
		for {
			pageURL, err := buildPageURL(target.URL, page, s.pageSize)
			if err != nil {
				return nil, fmt.Errorf("bank %s: %w", target.Bank, err)
			}

			doc, err := s.fetchDocument(ctx, pageURL)
			if err != nil {
				return nil, fmt.Errorf("bank %s: %w", target.Bank, err)
			}

			pageReviews := s.extractReviews(doc, target.Bank, req.StoreName)
			for _, review := range pageReviews {
				key := review.Bank + "\x1f" + review.Text + "\x1f" + review.Date.Format("2006-01-02")
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				results = append(results, review)
				collected++
			}

			if len(pageReviews) < s.pageSize {
				break
			}
			page++
		}

		if req.MinPerBank > 0 && collected < req.MinPerBank {
			s.logger.Warn("bank below review quota",
				"bank", target.Bank, "collected", collected, "min", req.MinPerBank)
		}
	}

	return results, nil
}

func (s *PlayStoreScraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ReviewInsights/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (s *PlayStoreScraper) extractReviews(doc *goquery.Document, bank, store string) []domain.RawReview {
	var collected []domain.RawReview

	doc.Find("div.review").Each(func(i int, sel *goquery.Selection) {
		review, err := parseReview(sel, bank, store)
		if err != nil {
			s.logger.Debug("skipping malformed review block", "bank", bank, "error", err)
			return
		}
		collected = append(collected, review)
	})

	return collected
}

func parseReview(sel *goquery.Selection, bank, store string) (domain.RawReview, error) {
	text := strings.TrimSpace(sel.Find(".review-text").First().Text())
	if text == "" {
		return domain.RawReview{}, fmt.Errorf("review block without text")
	}

	var rating float64
	ratingSel := sel.Find(".review-rating").First()
	if attr, exists := ratingSel.Attr("data-rating"); exists {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(attr), 64)
		if err != nil {
			return domain.RawReview{}, fmt.Errorf("bad rating %q: %w", attr, err)
		}
		rating = parsed
	}

	var date time.Time
	dateText := strings.TrimSpace(sel.Find(".review-date").First().Text())
	for _, layout := range reviewDateLayouts {
		if parsed, err := time.Parse(layout, dateText); err == nil {
			date = parsed.UTC()
			break
		}
	}

	return domain.RawReview{
		Text:   text,
		Rating: rating,
		Date:   date,
		Bank:   bank,
		Source: store,
	}, nil
}

func buildPageURL(base string, page, pageSize int) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid app url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("count", strconv.Itoa(pageSize))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
