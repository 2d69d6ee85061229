// Package analytics derives per-bank insight aggregates from the
// enriched review collection.
package analytics

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"ReviewInsights/internal/domain"
)

// DefaultTopN caps driver/pain-point lists per bank.
const DefaultTopN = 3

// Analyzer aggregates enriched reviews. It never persists anything:
// insights are recomputed on demand from the full collection.
type Analyzer struct {
	reviews []domain.EnrichedReview
	logger  *slog.Logger
}

// New wraps a review collection. Rows without a bank or sentiment
// label are skipped with a logged count rather than failing the batch.
func New(reviews []domain.EnrichedReview, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}

	usable := make([]domain.EnrichedReview, 0, len(reviews))
	skipped := 0
	for _, r := range reviews {
		if r.Bank == "" || r.SentimentLabel == "" {
			skipped++
			continue
		}
		usable = append(usable, r)
	}
	if skipped > 0 {
		logger.Warn("skipped reviews without bank or sentiment", "count", skipped)
	}
	logger.Info("analyzer initialized", "reviews", len(usable))

	return &Analyzer{reviews: usable, logger: logger}
}

// orderedCounter counts keys while remembering first-encounter order,
// so equal counts rank in the order their themes were first seen.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: map[string]int{}}
}

func (c *orderedCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *orderedCounter) top(n int) []domain.ThemeCount {
	ranked := make([]domain.ThemeCount, 0, len(c.order))
	for _, key := range c.order {
		ranked = append(ranked, domain.ThemeCount{Theme: key, Count: c.counts[key]})
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Count > ranked[b].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// PerBank computes top positive drivers and negative pain points for
// each bank, capped at topN entries each. Banks appear in
// first-encounter order.
func (a *Analyzer) PerBank(topN int) []domain.BankInsight {
	if topN <= 0 {
		topN = DefaultTopN
	}

	var bankOrder []string
	drivers := map[string]*orderedCounter{}
	pains := map[string]*orderedCounter{}

	for _, r := range a.reviews {
		if _, seen := drivers[r.Bank]; !seen {
			bankOrder = append(bankOrder, r.Bank)
			drivers[r.Bank] = newOrderedCounter()
			pains[r.Bank] = newOrderedCounter()
		}

		var counter *orderedCounter
		switch r.SentimentLabel {
		case domain.SentimentPositive:
			counter = drivers[r.Bank]
		case domain.SentimentNegative:
			counter = pains[r.Bank]
		default:
			continue // neutral fallback rows carry no polarity signal
		}
		for _, theme := range r.Themes {
			counter.add(theme)
		}
	}

	insights := make([]domain.BankInsight, 0, len(bankOrder))
	for _, bank := range bankOrder {
		insights = append(insights, domain.BankInsight{
			Bank:          bank,
			TopDrivers:    drivers[bank].top(topN),
			TopPainPoints: pains[bank].top(topN),
		})
	}
	a.logger.Info("generated insights", "banks", len(insights))
	return insights
}

// ThemeSummary is the flat (bank, sentiment, theme, count) export over
// every sentiment label present, sorted by bank, sentiment, then count
// descending.
func (a *Analyzer) ThemeSummary() []domain.ThemeStat {
	type key struct{ bank, sentiment, theme string }
	counts := map[key]int{}
	var order []key

	for _, r := range a.reviews {
		for _, theme := range r.Themes {
			k := key{bank: r.Bank, sentiment: r.SentimentLabel, theme: theme}
			if _, seen := counts[k]; !seen {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	stats := make([]domain.ThemeStat, 0, len(order))
	for _, k := range order {
		stats = append(stats, domain.ThemeStat{
			Bank: k.bank, Sentiment: k.sentiment, Theme: k.theme, Count: counts[k],
		})
	}
	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].Bank != stats[b].Bank {
			return stats[a].Bank < stats[b].Bank
		}
		if stats[a].Sentiment != stats[b].Sentiment {
			return stats[a].Sentiment < stats[b].Sentiment
		}
		return stats[a].Count > stats[b].Count
	})
	return stats
}

// FlattenInsights converts per-bank insights to the flat tabular form,
// drivers first, then pain points.
func FlattenInsights(insights []domain.BankInsight) []domain.ThemeStat {
	var stats []domain.ThemeStat
	for _, ins := range insights {
		for _, tc := range ins.TopDrivers {
			stats = append(stats, domain.ThemeStat{
				Bank: ins.Bank, Sentiment: domain.SentimentPositive, Theme: tc.Theme, Count: tc.Count,
			})
		}
		for _, tc := range ins.TopPainPoints {
			stats = append(stats, domain.ThemeStat{
				Bank: ins.Bank, Sentiment: domain.SentimentNegative, Theme: tc.Theme, Count: tc.Count,
			})
		}
	}
	return stats
}

// Digest renders insights as a plain-text report suitable for outbound
// notification channels.
func Digest(insights []domain.BankInsight) string {
	var b strings.Builder
	for _, ins := range insights {
		fmt.Fprintf(&b, "Insights for %s\n", ins.Bank)
		b.WriteString("Top drivers:\n")
		for _, tc := range ins.TopDrivers {
			fmt.Fprintf(&b, "  - %s (%d)\n", tc.Theme, tc.Count)
		}
		b.WriteString("Top pain points:\n")
		for _, tc := range ins.TopPainPoints {
			fmt.Fprintf(&b, "  - %s (%d)\n", tc.Theme, tc.Count)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
