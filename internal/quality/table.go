package quality

import "strings"

// Cell is one nullable table value. The zero value is a missing cell.
type Cell struct {
	Valid bool
	Value string
}

// NewCell wraps a present string value.
func NewCell(v string) Cell {
	return Cell{Valid: true, Value: v}
}

// Missing is the canonical absent cell.
var Missing = Cell{}

// Table is an ordered, column-named batch of review records. The
// quality layer owns and mutates it in place; stages communicate by
// handing the table onwards, never by sharing cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable builds a table from column names and string rows; short
// rows are padded with missing cells.
func NewTable(columns []string, rows [][]Cell) *Table {
	for i, row := range rows {
		for len(row) < len(columns) {
			row = append(row, Missing)
		}
		rows[i] = row[:len(columns)]
	}
	return &Table{Columns: columns, Rows: rows}
}

// ColumnIndex returns the position of name, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Column returns all cells of the named column in row order.
func (t *Table) Column(name string) []Cell {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// dropColumnAt removes the column at idx from the header and every row.
func (t *Table) dropColumnAt(idx int) {
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for i, row := range t.Rows {
		t.Rows[i] = append(row[:idx], row[idx+1:]...)
	}
}

// rowKey serializes a row for duplicate comparison. Missing cells and
// empty strings hash differently on purpose.
func (t *Table) rowKey(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.Valid {
			b.WriteByte('v')
			b.WriteString(c.Value)
		} else {
			b.WriteByte('x')
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}
