package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() *Table {
	return NewTable("License Usage Report",
		[]string{"Display Name", "Department", "Licensed"},
		[]Row{
			{Index: 0, Cells: []string{"Amy Lee", "Sales", "Yes"}},
			{Index: 1, Cells: []string{"Bob Stone", "Sales", "No"}},
			{Index: 2, Cells: []string{"Carol Nguyen", "Engineering", "Yes"}},
		})
}

func TestNewTableDisambiguatesDuplicateHeaders(t *testing.T) {
	as := assert.New(t)
	tbl := NewTable("r", []string{"Size", "Name", "Size", "Size"}, nil)
	as.Equal([]string{"Size", "Name", "Size (2)", "Size (3)"}, tbl.Columns)
	as.Equal(0, tbl.ColumnIndex("Size"))
	as.Equal(2, tbl.ColumnIndex("Size (2)"))
	as.Equal(3, tbl.ColumnIndex("Size (3)"))
}

func TestValue(t *testing.T) {
	as := assert.New(t)
	tbl := sample()
	as.Equal("Sales", tbl.Value(tbl.Rows[0], "Department"))
	as.Equal("", tbl.Value(tbl.Rows[0], "Nope"))
	short := Row{Index: 9, Cells: []string{"only one"}}
	as.Equal("", tbl.Value(short, "Licensed"))
}

func TestTokensCorpus(t *testing.T) {
	as := assert.New(t)
	tbl := sample()
	toks := tbl.Tokens()
	as.Contains(toks, "Amy Lee")
	as.Contains(toks, "Engineering")
	as.Contains(toks, "Yes")
	// "No" is too short for a suggestion
	as.NotContains(toks, "No")
	as.IsIncreasing(toks)
	// duplicate cell values collapse to one token
	n := 0
	for _, v := range toks {
		if v == "Sales" {
			n++
		}
	}
	as.Equal(1, n)
}

func TestDistinctValuesCountsAndOrder(t *testing.T) {
	as := assert.New(t)
	vals := sample().DistinctValues("Department")
	as.Equal([]ValueCount{{Value: "Sales", Count: 2}, {Value: "Engineering", Count: 1}}, vals)
	as.Nil(sample().DistinctValues("Nope"))
}

func TestTSV(t *testing.T) {
	as := assert.New(t)
	tbl := sample()
	as.Equal("Amy Lee\tSales\tYes", tbl.TSV(tbl.Rows[0]))
}

func TestEmpty(t *testing.T) {
	as := assert.New(t)
	as.False(sample().Empty())
	as.True(NewTable("t", nil, nil).Empty())
	as.True(NewTable("t", []string{"A"}, nil).Empty())
}
