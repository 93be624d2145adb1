package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Row is one record of a report. Cells are display strings parallel to the
// owning Table's Columns. Index is the row's position in the source document;
// it never changes and is what keeps repeated filter/sort passes stable.
type Row struct {
	Index int
	Cells []string
}

// Table is the immutable row collection built once from a report document.
// All views (filtered, sorted, paginated) are derived from it; nothing ever
// writes back into it after construction.
type Table struct {
	Title   string
	Columns []string
	Rows    []Row

	colIdx map[string]int

	tokOnce sync.Once
	tokens  []string
}

// NewTable builds a Table, disambiguating duplicate header texts by
// suffixing " (2)", " (3)", ... in document order so every column stays
// addressable by name.
func NewTable(title string, columns []string, rows []Row) *Table {
	cols := make([]string, len(columns))
	seen := make(map[string]int, len(columns))
	for i, c := range columns {
		name := c
		seen[c]++
		if n := seen[c]; n > 1 {
			name = fmt.Sprintf("%s (%d)", c, n)
		}
		cols[i] = name
	}
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return &Table{Title: title, Columns: cols, Rows: rows, colIdx: idx}
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.colIdx[name]; ok {
		return i
	}
	return -1
}

// Value returns the row's display value for the named column, "" when the
// column is unknown or the row is short.
func (t *Table) Value(r Row, column string) string {
	i := t.ColumnIndex(column)
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

func (t *Table) Empty() bool { return len(t.Columns) == 0 || len(t.Rows) == 0 }

// Tokens returns the deduplicated corpus of distinct cell values longer than
// two characters, sorted. Built once on first use; feeds search suggestions.
func (t *Table) Tokens() []string {
	t.tokOnce.Do(func() {
		set := make(map[string]struct{})
		for _, r := range t.Rows {
			for _, c := range r.Cells {
				if len([]rune(c)) > 2 {
					set[c] = struct{}{}
				}
			}
		}
		t.tokens = make([]string, 0, len(set))
		for v := range set {
			t.tokens = append(t.tokens, v)
		}
		sort.Strings(t.tokens)
	})
	return t.tokens
}

// DistinctValues returns the column's distinct values with occurrence
// counts, ordered by descending count then value. Drives the per-column
// equality filter picker.
func (t *Table) DistinctValues(column string) []ValueCount {
	ci := t.ColumnIndex(column)
	if ci < 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, r := range t.Rows {
		if ci < len(r.Cells) {
			counts[r.Cells[ci]]++
		}
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

type ValueCount struct {
	Value string
	Count int
}

// TSV renders the row tab-separated, for clipboard copy.
func (t *Table) TSV(r Row) string {
	return strings.Join(r.Cells, "\t")
}
