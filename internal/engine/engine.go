// Package engine owns the interactive state of a report view: the filter,
// sort, and pagination stages that turn the immutable row arena into the
// slice actually shown. Every change recomputes from the full collection
// (filter, then sort, then paginate); nothing is patched incrementally, so
// relaxing a filter always restores rows without an undo log.
package engine

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"reportview/internal/model"
	"reportview/internal/util/logx"
)

// FilterState combines the free-text search, per-column equality
// selections, and the optional boolean expression. All active parts are
// ANDed.
type FilterState struct {
	Search  string            // case-insensitive substring over all cells
	Columns map[string]string // column -> exact (case-sensitive) value
	Expr    string            // boolean expression over the row's cells
}

func (f FilterState) Empty() bool {
	return f.Search == "" && len(f.Columns) == 0 && f.Expr == ""
}

// SortState holds at most one active column. A zero Column means the view
// is in document order (the neutral indicator state).
type SortState struct {
	Column string
	Desc   bool
}

func (s SortState) Active() bool { return s.Column != "" }

// PageState is 1-based. Size comes from the fixed page-size choice set.
type PageState struct {
	Page int
	Size int
}

// View binds a Table to its filter/sort/page state and the derived
// filtered slice and visibility flags. It is not safe for concurrent
// mutation; the UI loop is the single writer.
type View struct {
	Table  *model.Table
	Filter FilterState
	Sort   SortState
	Page   PageState

	coll *collate.Collator
	expr *exprEval

	filtered   []model.Row
	visible    []bool
	totalPages int
}

// NewView builds a ready view: no filters, document order, page 1.
func NewView(t *model.Table, locale string, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = 25
	}
	v := &View{
		Table:  t,
		Filter: FilterState{Columns: map[string]string{}},
		Page:   PageState{Page: 1, Size: pageSize},
		coll:   collate.New(language.Make(locale), collate.Loose),
	}
	v.Refresh()
	return v
}

// Refresh recomputes filtered -> sorted -> paginated from the full arena.
func (v *View) Refresh() {
	v.filtered = applyFilters(v.Table, v.Filter, v.expr)
	v.sortFiltered()
	v.paginate()
}

func (v *View) SetSearch(q string) {
	v.Filter.Search = q
	v.Refresh()
}

func (v *View) SetColumnFilter(column, value string) {
	if v.Filter.Columns == nil {
		v.Filter.Columns = map[string]string{}
	}
	if value == "" {
		delete(v.Filter.Columns, column)
	} else {
		v.Filter.Columns[column] = value
	}
	v.Refresh()
}

// SetExpr compiles and activates a boolean expression filter. An empty
// string clears it. A compile error leaves the previous expression active.
func (v *View) SetExpr(expr string) error {
	ev, err := newExprEval(expr)
	if err != nil {
		return err
	}
	v.Filter.Expr = expr
	v.expr = ev
	v.Refresh()
	return nil
}

// ResetFilters drops the search term, every column selection, and the
// expression, restoring the unfiltered collection.
func (v *View) ResetFilters() {
	v.Filter = FilterState{Columns: map[string]string{}}
	v.expr = nil
	v.Refresh()
}

// SortBy applies the toggling rule: the active column flips direction, any
// other column is selected ascending.
func (v *View) SortBy(column string) {
	if v.Table.ColumnIndex(column) < 0 {
		return
	}
	if v.Sort.Column == column {
		v.Sort.Desc = !v.Sort.Desc
	} else {
		v.Sort = SortState{Column: column}
	}
	logx.Debugf("engine: sort column=%q desc=%v", v.Sort.Column, v.Sort.Desc)
	v.Refresh()
}

// SetSort sets an explicit column and direction (static mode flag path).
func (v *View) SetSort(column string, desc bool) {
	if column != "" && v.Table.ColumnIndex(column) < 0 {
		return
	}
	v.Sort = SortState{Column: column, Desc: desc}
	v.Refresh()
}

// Filtered is the current filtered+sorted collection, independent of the
// active page. Callers must not mutate it.
func (v *View) Filtered() []model.Row { return v.filtered }

func (v *View) FilteredCount() int { return len(v.filtered) }

// NoData reports the no-data placeholder state: exactly one of
// {placeholder, populated table} is ever rendered.
func (v *View) NoData() bool { return len(v.filtered) == 0 }
