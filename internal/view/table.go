// Package view holds the sortable, formatted row collections bound to the display.
package view

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by Table operations.
var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotSortable   = errors.New("column is not sortable")
	ErrOutOfRange    = errors.New("cell out of range")
)

// Column declares one projected column of a Table.
// Less is the column's sort key; a nil Less makes the column unsortable.
type Column[T any] struct {
	Header string
	Format func(T) string
	Less   func(a, b T) bool
}

type row[T any] struct {
	seq int // insertion order, the tie-breaker of every sort
	rec T
}

// Table is an ordered row collection with per-column formatting and sorting.
// Records are never mutated by the table.
type Table[T any] struct {
	columns []Column[T]
	rows    []row[T]
}

// NewTable creates a table over records, kept in the given order.
func NewTable[T any](columns []Column[T], records []T) *Table[T] {
	t := &Table[T]{columns: columns}
	t.Reset(records)
	return t
}

// Reset replaces all rows.
func (t *Table[T]) Reset(records []T) {
	t.rows = make([]row[T], len(records))
	for i, r := range records {
		t.rows[i] = row[T]{seq: i, rec: r}
	}
}

// RowCount returns the number of rows.
func (t *Table[T]) RowCount() int {
	return len(t.rows)
}

// ColumnCount returns the number of columns.
func (t *Table[T]) ColumnCount() int {
	return len(t.columns)
}

// Headers returns the column headers.
func (t *Table[T]) Headers() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Header
	}
	return out
}

// Row returns the record at row i in current order.
func (t *Table[T]) Row(i int) (T, bool) {
	if i < 0 || i >= len(t.rows) {
		var zero T
		return zero, false
	}
	return t.rows[i].rec, true
}

// Records returns the records in current order.
func (t *Table[T]) Records() []T {
	out := make([]T, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.rec
	}
	return out
}

// ColumnAt returns the formatted value of a cell.
func (t *Table[T]) ColumnAt(rowIdx, col int) (string, error) {
	if rowIdx < 0 || rowIdx >= len(t.rows) || col < 0 || col >= len(t.columns) {
		return "", fmt.Errorf("%w: row %d col %d", ErrOutOfRange, rowIdx, col)
	}
	return t.columns[col].Format(t.rows[rowIdx].rec), nil
}

// ColumnIndex resolves a header to its column index.
func (t *Table[T]) ColumnIndex(header string) (int, error) {
	for i, c := range t.columns {
		if c.Header == header {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, header)
}

// SortBy re-sorts all rows by column. Equal keys keep insertion order in
// both directions, so repeating a sort yields the same order.
func (t *Table[T]) SortBy(col int, ascending bool) error {
	if col < 0 || col >= len(t.columns) {
		return fmt.Errorf("%w: index %d", ErrUnknownColumn, col)
	}
	less := t.columns[col].Less
	if less == nil {
		return fmt.Errorf("%w: %q", ErrNotSortable, t.columns[col].Header)
	}

	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.rows[i], t.rows[j]
		var ab, ba bool
		if ascending {
			ab, ba = less(a.rec, b.rec), less(b.rec, a.rec)
		} else {
			ab, ba = less(b.rec, a.rec), less(a.rec, b.rec)
		}
		if ab != ba {
			return ab
		}
		return a.seq < b.seq
	})
	return nil
}

// SortByHeader is SortBy addressed by column header.
func (t *Table[T]) SortByHeader(header string, ascending bool) error {
	col, err := t.ColumnIndex(header)
	if err != nil {
		return err
	}
	return t.SortBy(col, ascending)
}

// Grid is a fully formatted, read-only projection of a table.
type Grid struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Links   []string   `json:"links,omitempty"`
}

// Grid formats every cell in current order.
func (t *Table[T]) Grid() Grid {
	g := Grid{Headers: t.Headers(), Rows: make([][]string, len(t.rows))}
	for i, r := range t.rows {
		cells := make([]string, len(t.columns))
		for j, c := range t.columns {
			cells[j] = c.Format(r.rec)
		}
		g.Rows[i] = cells
	}
	return g
}

// GridWithLinks is Grid plus one link per row.
func (t *Table[T]) GridWithLinks(link func(T) string) Grid {
	g := t.Grid()
	g.Links = make([]string, len(t.rows))
	for i, r := range t.rows {
		g.Links[i] = link(r.rec)
	}
	return g
}

// Less helpers.

func lessFloat[T any](key func(T) float64) func(a, b T) bool {
	return func(a, b T) bool { return key(a) < key(b) }
}

func lessInt[T any](key func(T) int64) func(a, b T) bool {
	return func(a, b T) bool { return key(a) < key(b) }
}

func lessString[T any](key func(T) string) func(a, b T) bool {
	return func(a, b T) bool { return key(a) < key(b) }
}

func lessBool[T any](key func(T) bool) func(a, b T) bool {
	return func(a, b T) bool { return !key(a) && key(b) }
}
