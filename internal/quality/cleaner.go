package quality

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"ReviewInsights/internal/ports"
)

// indexArtifactColumn is the leftover row-index column produced by
// naive CSV exports of the upstream collector.
const indexArtifactColumn = "unnamed:_0"

// defaultInvalidTokens are placeholder strings that mean "no value".
var defaultInvalidTokens = []string{"NA", "null", "NULL", "-", "N/A"}

// nullLikeDatetimeTokens normalize to missing before date parsing.
var nullLikeDatetimeTokens = map[string]struct{}{
	"": {}, "nan": {}, "null": {}, "None": {}, "NaT": {}, "N/A": {},
}

// KeepPolicy selects which of a duplicate group survives DropDuplicates.
type KeepPolicy int

const (
	KeepFirst KeepPolicy = iota
	KeepLast
	KeepNone
)

// MissingReport describes absent values in one column.
type MissingReport struct {
	Column  string
	Count   int
	Percent float64
}

// InvalidReport summarizes placeholder values found in a text column.
type InvalidReport struct {
	Count    int
	Examples []string
}

// Cleaner applies best-effort hygiene to a review table. Every
// operation mutates the held table in place and returns it so calls
// can be chained; preconditions that do not hold (absent columns,
// unknown rename keys) produce a warning, never a failure.
type Cleaner struct {
	table      *Table
	translator ports.Translator
	detect     func(text string) (english, ok bool)
	logger     *slog.Logger
}

// NewCleaner wraps a table. The translator may be nil when the
// translation pass is not used.
func NewCleaner(t *Table, translator ports.Translator, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{table: t, translator: translator, detect: DetectEnglish, logger: logger}
}

// Table exposes the held table.
func (c *Cleaner) Table() *Table {
	return c.table
}

// CleanColumnNames trims, lowercases, and underscores column names.
func (c *Cleaner) CleanColumnNames() *Table {
	for i, col := range c.table.Columns {
		name := strings.ToLower(strings.TrimSpace(col))
		c.table.Columns[i] = strings.ReplaceAll(name, " ", "_")
	}
	return c.table
}

// DropRedundantColumns removes the CSV index artifact and any
// duplicate-named columns, keeping the first occurrence.
func (c *Cleaner) DropRedundantColumns() *Table {
	if idx := c.table.ColumnIndex(indexArtifactColumn); idx >= 0 {
		c.table.dropColumnAt(idx)
	}

	seen := map[string]struct{}{}
	for i := 0; i < len(c.table.Columns); {
		if _, dup := seen[c.table.Columns[i]]; dup {
			c.table.dropColumnAt(i)
			continue
		}
		seen[c.table.Columns[i]] = struct{}{}
		i++
	}
	return c.table
}

// Clean runs the standard hygiene sequence.
func (c *Cleaner) Clean() *Table {
	c.CleanColumnNames()
	c.DropRedundantColumns()
	return c.table
}

// Summary reports missing counts and percentages for every column,
// most missing first.
func (c *Cleaner) Summary() []MissingReport {
	total := len(c.table.Rows)
	reports := make([]MissingReport, 0, len(c.table.Columns))
	for i, col := range c.table.Columns {
		count := 0
		for _, row := range c.table.Rows {
			if !row[i].Valid {
				count++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		reports = append(reports, MissingReport{Column: col, Count: count, Percent: pct})
	}
	sort.SliceStable(reports, func(a, b int) bool { return reports[a].Count > reports[b].Count })
	return reports
}

// SignificantMissing keeps only columns whose missing percentage
// exceeds threshold.
func (c *Cleaner) SignificantMissing(threshold float64) []MissingReport {
	all := c.Summary()
	out := all[:0:0]
	for _, r := range all {
		if r.Percent > threshold {
			out = append(out, r)
		}
	}
	return out
}

// CountDuplicates returns how many rows duplicate an earlier row.
func (c *Cleaner) CountDuplicates() int {
	seen := map[string]struct{}{}
	count := 0
	for _, row := range c.table.Rows {
		key := c.table.rowKey(row)
		if _, ok := seen[key]; ok {
			count++
			continue
		}
		seen[key] = struct{}{}
	}
	return count
}

// DisplayDuplicates returns the indexes of rows that duplicate an
// earlier row, in row order.
func (c *Cleaner) DisplayDuplicates() []int {
	seen := map[string]struct{}{}
	var dups []int
	for i, row := range c.table.Rows {
		key := c.table.rowKey(row)
		if _, ok := seen[key]; ok {
			dups = append(dups, i)
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// DropDuplicates removes duplicate rows according to keep.
func (c *Cleaner) DropDuplicates(keep KeepPolicy) *Table {
	counts := map[string]int{}
	for _, row := range c.table.Rows {
		counts[c.table.rowKey(row)]++
	}

	seen := map[string]int{}
	kept := c.table.Rows[:0:0]
	for _, row := range c.table.Rows {
		key := c.table.rowKey(row)
		seen[key]++
		switch keep {
		case KeepFirst:
			if seen[key] == 1 {
				kept = append(kept, row)
			}
		case KeepLast:
			if seen[key] == counts[key] {
				kept = append(kept, row)
			}
		case KeepNone:
			if counts[key] == 1 {
				kept = append(kept, row)
			}
		}
	}

	dropped := len(c.table.Rows) - len(kept)
	if dropped > 0 {
		c.logger.Info("dropped duplicate rows", "count", dropped)
	}
	c.table.Rows = kept
	return c.table
}

// FindInvalidValues flags cells that are empty or match the invalid
// token set, returning counts and up to 5 examples per column.
func (c *Cleaner) FindInvalidValues(additional []string) map[string]InvalidReport {
	invalid := map[string]struct{}{"": {}}
	for _, tok := range defaultInvalidTokens {
		invalid[tok] = struct{}{}
	}
	for _, tok := range additional {
		invalid[tok] = struct{}{}
	}

	summary := map[string]InvalidReport{}
	for i, col := range c.table.Columns {
		report := InvalidReport{}
		for _, row := range c.table.Rows {
			if !row[i].Valid {
				continue
			}
			if _, bad := invalid[strings.TrimSpace(row[i].Value)]; !bad {
				continue
			}
			report.Count++
			if len(report.Examples) < 5 {
				report.Examples = append(report.Examples, row[i].Value)
			}
		}
		if report.Count > 0 {
			summary[col] = report
		}
	}
	return summary
}

// datetimeLayouts are tried in order when coercing date columns.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
}

// ConvertColumnsToDatetime normalizes null-like tokens to missing and
// parses the remaining values to UTC timestamps rendered as RFC 3339.
// When columns is nil, every column whose name mentions date or time
// is converted. Unparsable values become missing; the before/after
// count is logged per column.
func (c *Cleaner) ConvertColumnsToDatetime(columns []string) *Table {
	if columns == nil {
		for _, col := range c.table.Columns {
			lower := strings.ToLower(col)
			if strings.Contains(lower, "date") || strings.Contains(lower, "time") {
				columns = append(columns, col)
			}
		}
	}

	for _, col := range columns {
		idx := c.table.ColumnIndex(col)
		if idx < 0 {
			c.logger.Warn("datetime column not found", "column", col)
			continue
		}

		originalNonNull := 0
		converted := 0
		for i, row := range c.table.Rows {
			if !row[idx].Valid {
				continue
			}
			originalNonNull++
			value := strings.TrimSpace(row[idx].Value)
			if _, nullLike := nullLikeDatetimeTokens[value]; nullLike {
				c.table.Rows[i][idx] = Missing
				continue
			}
			if ts, ok := parseDatetime(value); ok {
				c.table.Rows[i][idx] = NewCell(ts.UTC().Format(time.RFC3339))
				converted++
			} else {
				c.table.Rows[i][idx] = Missing
			}
		}
		c.logger.Info("converted datetime column",
			"column", col, "converted", converted, "of", originalNonNull)
	}
	return c.table
}

func parseDatetime(value string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// DropEmptyColumns removes columns whose every cell is missing.
func (c *Cleaner) DropEmptyColumns() *Table {
	for i := 0; i < len(c.table.Columns); {
		empty := true
		for _, row := range c.table.Rows {
			if row[i].Valid {
				empty = false
				break
			}
		}
		if empty && len(c.table.Rows) > 0 {
			c.logger.Info("dropping empty column", "column", c.table.Columns[i])
			c.table.dropColumnAt(i)
			continue
		}
		i++
	}
	return c.table
}

// DropColumns removes the named columns where present, warning about
// the rest.
func (c *Cleaner) DropColumns(columns []string) *Table {
	for _, col := range columns {
		idx := c.table.ColumnIndex(col)
		if idx < 0 {
			c.logger.Warn("column not found, cannot drop", "column", col)
			continue
		}
		c.table.dropColumnAt(idx)
	}
	return c.table
}

// RenameColumns applies renameMap to existing columns, warning on
// unknown keys.
func (c *Cleaner) RenameColumns(renameMap map[string]string) *Table {
	for from, to := range renameMap {
		idx := c.table.ColumnIndex(from)
		if idx < 0 {
			c.logger.Warn("column not found, cannot rename", "column", from)
			continue
		}
		c.table.Columns[idx] = to
	}
	return c.table
}

// Rename is one from→to column mapping. An ordered slice is used
// instead of a map so the prioritized column order stays fixed.
type Rename struct {
	From string
	To   string
}

// RenameAndPrioritizeColumns renames columns and moves the renamed
// ones to the front in the given order; the rest keep their relative
// order. Unknown source columns are skipped with a warning.
func (c *Cleaner) RenameAndPrioritizeColumns(renames []Rename) *Table {
	renamed := make([]string, 0, len(renames))
	for _, r := range renames {
		from, to := r.From, r.To
		idx := c.table.ColumnIndex(from)
		if idx < 0 {
			c.logger.Warn("column not found, skipped", "column", from)
			continue
		}
		c.table.Columns[idx] = to
		renamed = append(renamed, to)
	}

	front := make([]int, 0, len(renamed))
	for _, name := range renamed {
		front = append(front, c.table.ColumnIndex(name))
	}
	inFront := map[int]struct{}{}
	for _, idx := range front {
		inFront[idx] = struct{}{}
	}
	orderIdx := append([]int{}, front...)
	for i := range c.table.Columns {
		if _, ok := inFront[i]; !ok {
			orderIdx = append(orderIdx, i)
		}
	}

	newCols := make([]string, len(orderIdx))
	for pos, idx := range orderIdx {
		newCols[pos] = c.table.Columns[idx]
	}
	for r, row := range c.table.Rows {
		newRow := make([]Cell, len(orderIdx))
		for pos, idx := range orderIdx {
			newRow[pos] = row[idx]
		}
		c.table.Rows[r] = newRow
	}
	c.table.Columns = newCols
	return c.table
}

// DropRowsWithMissingIn removes rows missing a value in any of the
// named columns.
func (c *Cleaner) DropRowsWithMissingIn(columns []string) *Table {
	idxs := make([]int, 0, len(columns))
	for _, col := range columns {
		if idx := c.table.ColumnIndex(col); idx >= 0 {
			idxs = append(idxs, idx)
		} else {
			c.logger.Warn("column not found, cannot filter rows", "column", col)
		}
	}

	kept := c.table.Rows[:0:0]
	for _, row := range c.table.Rows {
		missing := false
		for _, idx := range idxs {
			if !row[idx].Valid {
				missing = true
				break
			}
		}
		if !missing {
			kept = append(kept, row)
		}
	}
	dropped := len(c.table.Rows) - len(kept)
	if dropped > 0 {
		c.logger.Info("dropped rows with missing required fields", "count", dropped)
	}
	c.table.Rows = kept
	return c.table
}

// FilterEnglishText keeps only rows whose text is detected as English.
// Detection failure counts as a non-match: the row is dropped.
func (c *Cleaner) FilterEnglishText(column string) *Table {
	idx := c.table.ColumnIndex(column)
	if idx < 0 {
		c.logger.Warn("column not found, language filter skipped", "column", column)
		return c.table
	}

	kept := c.table.Rows[:0:0]
	for _, row := range c.table.Rows {
		if !row[idx].Valid {
			continue
		}
		english, ok := c.detect(row[idx].Value)
		if ok && english {
			kept = append(kept, row)
		}
	}
	dropped := len(c.table.Rows) - len(kept)
	if dropped > 0 {
		c.logger.Info("dropped non-English rows", "count", dropped)
	}
	c.table.Rows = kept
	return c.table
}
