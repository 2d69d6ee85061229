package scanner

import (
	"context"
	"fmt"

	"ReviewInsights/internal/domain"
)

// AppTarget describes a single bank's app listing on a review store.
type AppTarget struct {
	Bank string
	URL  string
}

// Request carries all parameters required to execute a scrape.
type Request struct {
	StoreName  string
	Targets    []AppTarget
	MinPerBank int
	Options    map[string]string
}

// Scraper captures a single store strategy (Play Store, App Store, etc.).
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, req Request) ([]domain.RawReview, error)
}

// Registry keeps a mapping from scraper names to their implementations.
type Registry struct {
	scrapers map[string]Scraper
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: map[string]Scraper{}}
}

// Register adds or replaces a scraper implementation.
func (r *Registry) Register(scraper Scraper) {
	if r.scrapers == nil {
		r.scrapers = map[string]Scraper{}
	}
	r.scrapers[scraper.Name()] = scraper
}

// Resolve returns a scraper by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scraper, error) {
	if scraper, ok := r.scrapers[name]; ok {
		return scraper, nil
	}
	return nil, fmt.Errorf("scraper %s is not registered", name)
}
