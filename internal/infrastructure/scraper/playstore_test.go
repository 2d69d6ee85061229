package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"ReviewInsights/internal/scanner"
)

func TestBuildPageURL(t *testing.T) {
	t.Parallel()

	base := "https://play.google.com/store/apps/details?id=com.example.bank"
	u, err := buildPageURL(base, 3, 40)
	if err != nil {
		t.Fatalf("buildPageURL returned error: %v", err)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}

	if parsed.Scheme != "https" || parsed.Host != "play.google.com" {
		t.Fatalf("unexpected host: %s", parsed.Host)
	}

	q := parsed.Query()
	if q.Get("id") != "com.example.bank" {
		t.Fatalf("base query lost: %s", parsed.RawQuery)
	}
	if q.Get("page") != "3" {
		t.Fatalf("expected page=3, got %s", q.Get("page"))
	}
	if q.Get("count") != "40" {
		t.Fatalf("expected count=40, got %s", q.Get("count"))
	}
}

func TestParseReview(t *testing.T) {
	t.Parallel()

	html := `
	<div class="review">
	  <span class="review-rating" data-rating="4"></span>
	  <span class="review-date">2025-06-01</span>
	  <p class="review-text">Great app, transfers are fast.</p>
	</div>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	review, err := parseReview(doc.Find("div.review").First(), "CBE", "Google Play")
	if err != nil {
		t.Fatalf("parseReview error: %v", err)
	}

	if review.Text != "Great app, transfers are fast." {
		t.Fatalf("unexpected text: %q", review.Text)
	}
	if review.Rating != 4 {
		t.Fatalf("unexpected rating: %f", review.Rating)
	}
	if review.Date.Format("2006-01-02") != "2025-06-01" {
		t.Fatalf("unexpected date: %v", review.Date)
	}
	if review.Bank != "CBE" || review.Source != "Google Play" {
		t.Fatalf("unexpected attribution: %+v", review)
	}
}

func TestParseReviewRejectsEmptyText(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="review"><span class="review-rating" data-rating="5"></span></div>`))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	if _, err := parseReview(doc.Find("div.review").First(), "CBE", "Google Play"); err == nil {
		t.Fatalf("expected error for review without text")
	}
}

func TestPlayStoreScraperDeduplicates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
		<div class="review">
		  <span class="review-rating" data-rating="1"></span>
		  <span class="review-date">2025-06-01</span>
		  <p class="review-text">App crashes on login.</p>
		</div>
		<div class="review">
		  <span class="review-rating" data-rating="1"></span>
		  <span class="review-date">2025-06-01</span>
		  <p class="review-text">App crashes on login.</p>
		</div>
		<div class="review">
		  <span class="review-rating" data-rating="5"></span>
		  <span class="review-date">2025-06-02</span>
		  <p class="review-text">Love the new design.</p>
		</div>`))
	}))
	defer server.Close()

	sc := NewPlayStoreScraper(server.Client(), slog.Default())
	sc.pageSize = 10

	reviews, err := sc.Scrape(context.Background(), scanner.Request{
		StoreName: "Google Play",
		Targets:   []scanner.AppTarget{{Bank: "CBE", URL: server.URL + "/store/apps"}},
	})
	if err != nil {
		t.Fatalf("Scrape error: %v", err)
	}

	if len(reviews) != 2 {
		t.Fatalf("expected duplicate to collapse to 2 reviews, got %d", len(reviews))
	}
	if reviews[0].Text != "App crashes on login." || reviews[1].Text != "Love the new design." {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}

func TestPlayStoreScraperRequiresTargets(t *testing.T) {
	t.Parallel()

	sc := NewPlayStoreScraper(nil, slog.Default())
	if _, err := sc.Scrape(context.Background(), scanner.Request{StoreName: "Google Play"}); err == nil {
		t.Fatalf("expected error for empty target list")
	}
}
