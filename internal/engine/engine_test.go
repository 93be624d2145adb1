package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportview/internal/model"
)

func mkTable(cols []string, cells [][]string) *model.Table {
	rows := make([]model.Row, len(cells))
	for i, c := range cells {
		rows[i] = model.Row{Index: i, Cells: c}
	}
	return model.NewTable("Test Report", cols, rows)
}

func scoreTable() *model.Table {
	return mkTable([]string{"Name", "Score"}, [][]string{
		{"Bob", "10"},
		{"amy", "2"},
		{"Amy", "2"},
	})
}

func names(rows []model.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Cells[0]
	}
	return out
}

func TestEmptyFilterIsIdentity(t *testing.T) {
	as := assert.New(t)
	tbl := scoreTable()
	v := NewView(tbl, "en", 25)

	got := v.Filtered()
	as.Equal(tbl.Rows, got)
	// Identical backing slice, not a copy: no filters means the arena itself.
	as.True(&got[0] == &tbl.Rows[0])

	// Applying and clearing a search restores the identity.
	v.SetSearch("amy")
	v.ResetFilters()
	got = v.Filtered()
	as.True(&got[0] == &tbl.Rows[0])
}

func TestSearchIsCaseInsensitiveAcrossAllColumns(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SetSearch("amy")
	as.ElementsMatch([]string{"amy", "Amy"}, names(v.Filtered()))

	// Substring match against any column, not just the first.
	v.SetSearch("10")
	as.Equal([]string{"Bob"}, names(v.Filtered()))

	v.SetSearch("")
	as.Equal(3, v.FilteredCount())
}

func TestColumnFilterIsExactAndCaseSensitive(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SetColumnFilter("Name", "amy")
	require.Equal(t, 1, v.FilteredCount())
	as.Equal("amy", v.Filtered()[0].Cells[0])

	// Substrings do not match.
	v.SetColumnFilter("Name", "am")
	as.Equal(0, v.FilteredCount())

	// Clearing the selection removes the constraint.
	v.SetColumnFilter("Name", "")
	as.Equal(3, v.FilteredCount())
}

func TestFiltersCombineWithAnd(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SetSearch("2")
	as.Equal(2, v.FilteredCount())
	v.SetColumnFilter("Name", "Amy")
	as.Equal(1, v.FilteredCount())
	as.Equal("Amy", v.Filtered()[0].Cells[0])
}

func TestAddingConstraintNeverGrowsCount(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SetSearch("a")
	before := v.FilteredCount()
	v.SetColumnFilter("Score", "2")
	as.LessOrEqual(v.FilteredCount(), before)
	v.SetColumnFilter("Name", "nobody")
	as.LessOrEqual(v.FilteredCount(), before)
}

func TestFilteringRestartsFromFullCollection(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SetSearch("amy")
	as.Equal(2, v.FilteredCount())
	// Relaxing the term restores rows hidden by the stricter one.
	v.SetSearch("")
	as.Equal(3, v.FilteredCount())
}

func TestNumericSortWithTies(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SortBy("Score")
	// Numeric compare: 2 < 10 despite "10" < "2" as text. Ties keep
	// document order: amy came before Amy.
	as.Equal([]string{"amy", "Amy", "Bob"}, names(v.Filtered()))
}

func TestSortToggleAscThenDesc(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SortBy("Score")
	as.Equal(SortState{Column: "Score", Desc: false}, v.Sort)
	as.Equal([]string{"amy", "Amy", "Bob"}, names(v.Filtered()))

	v.SortBy("Score")
	as.Equal(SortState{Column: "Score", Desc: true}, v.Sort)
	as.Equal([]string{"Bob", "amy", "Amy"}, names(v.Filtered()))

	// A different column resets to ascending.
	v.SortBy("Name")
	as.Equal(SortState{Column: "Name", Desc: false}, v.Sort)
}

func TestSortStabilityOnConstantColumn(t *testing.T) {
	as := assert.New(t)
	tbl := mkTable([]string{"Name", "Group"}, [][]string{
		{"c", "x"}, {"a", "x"}, {"b", "x"}, {"d", "x"},
	})
	v := NewView(tbl, "en", 25)
	v.SortBy("Group")
	as.Equal([]string{"c", "a", "b", "d"}, names(v.Filtered()))
	// Re-sorting a constant column only flips direction of equal keys,
	// which is still the original order: deterministic forever.
	v.SortBy("Group")
	as.Equal([]string{"c", "a", "b", "d"}, names(v.Filtered()))
}

func TestThousandsSeparatorsSortNumerically(t *testing.T) {
	as := assert.New(t)
	tbl := mkTable([]string{"Mailbox", "Size (MB)"}, [][]string{
		{"a", "1,234"},
		{"b", "987"},
		{"c", "12,000"},
	})
	v := NewView(tbl, "en", 25)
	v.SortBy("Size (MB)")
	as.Equal([]string{"b", "a", "c"}, names(v.Filtered()))
}

func TestDateSort(t *testing.T) {
	as := assert.New(t)
	tbl := mkTable([]string{"User", "Last Sign-In"}, [][]string{
		{"a", "2024-03-07 09:15"},
		{"b", "2023-11-30 23:59"},
		{"c", "2024-03-07 08:00"},
	})
	v := NewView(tbl, "en", 25)
	v.SortBy("Last Sign-In")
	as.Equal([]string{"b", "c", "a"}, names(v.Filtered()))
}

func TestMixedValuesFallBackToText(t *testing.T) {
	as := assert.New(t)
	tbl := mkTable([]string{"V"}, [][]string{
		{"beta"}, {"10"}, {"alpha"},
	})
	v := NewView(tbl, "en", 25)
	v.SortBy("V")
	// Not a crash, and a total order comes out.
	as.Len(v.Filtered(), 3)
}

func TestSortUnknownColumnIsNoop(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	v.SortBy("Nope")
	as.False(v.Sort.Active())
	as.Equal([]string{"Bob", "amy", "Amy"}, names(v.Filtered()))
}

func TestExpressionFilter(t *testing.T) {
	as := assert.New(t)
	v := NewView(scoreTable(), "en", 25)
	require.NoError(t, v.SetExpr("Score > 5"))
	as.Equal([]string{"Bob"}, names(v.Filtered()))

	// Bracket syntax for column names containing spaces.
	tbl := mkTable([]string{"Display Name", "Score"}, [][]string{
		{"Bob", "10"}, {"Amy", "2"},
	})
	v2 := NewView(tbl, "en", 25)
	require.NoError(t, v2.SetExpr("[Display Name] == 'Amy'"))
	as.Equal(1, v2.FilteredCount())
	require.NoError(t, v2.SetExpr("Display_Name == 'Bob' && Score >= 10"))
	as.Equal(1, v2.FilteredCount())

	// A bad expression reports the error and leaves the old one active.
	err := v2.SetExpr("&&& nope")
	as.Error(err)
	as.Equal(1, v2.FilteredCount())

	// Clearing restores everything.
	require.NoError(t, v2.SetExpr(""))
	as.Equal(2, v2.FilteredCount())
}

func bigTable(n int) *model.Table {
	cells := make([][]string, n)
	for i := range cells {
		cells[i] = []string{fmt.Sprintf("user%02d", i), fmt.Sprintf("%d", i%7)}
	}
	return mkTable([]string{"Name", "Bucket"}, cells)
}

func TestPaginationTotals(t *testing.T) {
	as := assert.New(t)
	v := NewView(bigTable(57), "en", 25)
	as.Equal(3, v.TotalPages())
	as.Len(v.PageRows(), 25)

	v.GoTo(3)
	as.Len(v.PageRows(), 7)
	as.Equal("user50", v.PageRows()[0].Cells[0])
}

func TestPaginationNavigationClamps(t *testing.T) {
	as := assert.New(t)
	v := NewView(bigTable(57), "en", 25)

	// Out-of-range requests are no-ops, not errors.
	v.GoTo(0)
	as.Equal(1, v.Page.Page)
	v.GoTo(99)
	as.Equal(1, v.Page.Page)
	v.PrevPage()
	as.Equal(1, v.Page.Page)

	v.NextPage()
	as.Equal(2, v.Page.Page)
	v.LastPage()
	as.Equal(3, v.Page.Page)
	v.NextPage()
	as.Equal(3, v.Page.Page)
	v.FirstPage()
	as.Equal(1, v.Page.Page)
}

func TestPageSizeChangeResetsToFirstPage(t *testing.T) {
	as := assert.New(t)
	v := NewView(bigTable(57), "en", 25)
	v.GoTo(3)
	v.SetPageSize(10)
	as.Equal(1, v.Page.Page)
	as.Equal(6, v.TotalPages())
	as.Len(v.PageRows(), 10)
}

func TestShrinkingFilterReclampsCurrentPage(t *testing.T) {
	as := assert.New(t)
	v := NewView(bigTable(57), "en", 25)
	v.GoTo(3)
	require.Equal(t, 3, v.Page.Page)

	// Bucket "3" keeps ~8 rows: fewer than one full page.
	v.SetColumnFilter("Bucket", "3")
	as.Equal(1, v.TotalPages())
	as.Equal(1, v.Page.Page)
	as.GreaterOrEqual(v.Page.Page, 1)
}

func TestEmptyFilteredSetIsDefinedNoDataState(t *testing.T) {
	as := assert.New(t)
	v := NewView(bigTable(57), "en", 25)
	v.SetSearch("no such value anywhere")
	as.True(v.NoData())
	as.Equal(1, v.TotalPages())
	as.Equal(1, v.Page.Page)
	as.Empty(v.PageRows())
	for _, vis := range v.Visible() {
		as.False(vis)
	}
}

func TestOnlyActivePageRowsAreVisible(t *testing.T) {
	as := assert.New(t)
	v := NewView(bigTable(57), "en", 25)
	v.GoTo(2)
	vis := v.Visible()
	require.Len(t, vis, 57)
	count := 0
	for i, on := range vis {
		if on {
			count++
			as.GreaterOrEqual(i, 25)
			as.Less(i, 50)
		}
	}
	as.Equal(25, count)
}

func TestFilteringNeverMutatesArena(t *testing.T) {
	as := assert.New(t)
	tbl := scoreTable()
	v := NewView(tbl, "en", 25)
	// Sorting with no filter active must reorder a copy, not the arena.
	v.SortBy("Score")
	as.Equal([]string{"Bob", "amy", "Amy"}, names(tbl.Rows))
	v.SetSearch("amy")
	v.SortBy("Score")
	as.Equal([]string{"Bob", "amy", "Amy"}, names(tbl.Rows))
	for i, r := range tbl.Rows {
		as.Equal(i, r.Index)
	}
	// Dropping the filter while sorted restores hidden rows into sorted
	// order, still without touching the arena.
	v.SetSearch("")
	as.Equal([]string{"Bob", "amy", "Amy"}, names(v.Filtered()))
	as.Equal([]string{"Bob", "amy", "Amy"}, names(tbl.Rows))
}
