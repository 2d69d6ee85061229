package quality

import (
	"context"
	"sync"
)

// TranslateToEnglish translates a single value when it is not already
// English. Detection failure or a translator error preserves the
// original text; this function never fails.
func (c *Cleaner) TranslateToEnglish(ctx context.Context, text string) string {
	english, ok := c.detect(text)
	if !ok || english {
		return text
	}
	if c.translator == nil {
		return text
	}

	translated, err := c.translator.Translate(ctx, text, "en")
	if err != nil {
		c.logger.Warn("translation failed, keeping original", "error", err)
		return text
	}
	return translated
}

// TranslateNonEnglish runs TranslateToEnglish over every cell of the
// column. Per-row translation calls are issued concurrently and
// gathered as one batch: results land at their input row positions
// regardless of completion order, and one row's failure never affects
// its siblings.
func (c *Cleaner) TranslateNonEnglish(ctx context.Context, column string) *Table {
	idx := c.table.ColumnIndex(column)
	if idx < 0 {
		c.logger.Warn("column not found, translation skipped", "column", column)
		return c.table
	}

	results := make([]string, len(c.table.Rows))
	var wg sync.WaitGroup
	for i, row := range c.table.Rows {
		if !row[idx].Valid {
			continue
		}
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			results[i] = c.TranslateToEnglish(ctx, text)
		}(i, row[idx].Value)
	}
	wg.Wait()

	for i, row := range c.table.Rows {
		if row[idx].Valid {
			c.table.Rows[i][idx] = NewCell(results[i])
		}
	}
	return c.table
}
