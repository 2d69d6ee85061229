package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"ReviewInsights/internal/config"
	"ReviewInsights/internal/domain"
	"ReviewInsights/internal/ports"
	"ReviewInsights/internal/scanner"
)

// StrategySource implements ReviewSource via registered scraper strategies.
type StrategySource struct {
	registry *scanner.Registry
	stores   []config.StoreConfig
	logger   *slog.Logger
}

var _ ports.ReviewSource = (*StrategySource)(nil)

// NewStrategySource wires the scraper registry with config-defined stores.
func NewStrategySource(reg *scanner.Registry, stores []config.StoreConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		stores:   stores,
		logger:   log,
	}
}

// FetchReviews iterates over configured stores and executes their scrapers.
func (s *StrategySource) FetchReviews(ctx context.Context) ([]domain.RawReview, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scraper registry is not configured")
	}

	s.debug("fetch reviews", "stores", len(s.stores))

	var aggregated []domain.RawReview
	for _, store := range s.stores {
		s.debug("process store", "store", store.Name, "scraper", store.Scraper, "apps", len(store.Apps))
		strategy, err := s.registry.Resolve(store.Scraper)
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", store.Name, err)
		}

		req := scanner.Request{
			StoreName:  store.Name,
			MinPerBank: store.MinReviewsPerBank,
			Options:    store.Options,
			Targets:    toScannerTargets(store.Apps),
		}

		results, err := strategy.Scrape(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scrape store %s: %w", store.Name, err)
		}

		for i := range results {
			if results[i].Source == "" {
				results[i].Source = store.Name
			}
		}
		s.debug("store produced reviews", "store", store.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	s.debug("strategy source done", "total_reviews", len(aggregated))
	return aggregated, nil
}

func toScannerTargets(cfg []config.AppConfig) []scanner.AppTarget {
	targets := make([]scanner.AppTarget, 0, len(cfg))
	for _, app := range cfg {
		targets = append(targets, scanner.AppTarget{
			Bank: app.Bank,
			URL:  app.URL,
		})
	}
	return targets
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
