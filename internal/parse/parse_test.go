package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `<!DOCTYPE html>
<html>
<head><title>Contoso Reports</title></head>
<body>
<h1>  License   Report </h1>
<table id="report">
<thead>
<tr><th>Display Name</th><th>UPN</th><th>Licenses</th></tr>
</thead>
<tbody>
<tr><td> Amy   Lee </td><td>amy@contoso.com</td><td>E5</td></tr>
<tr><td>Bob<br>Stone</td><td>bob@contoso.com</td><td>E3</td></tr>
</tbody>
</table>
</body>
</html>`

func TestReadDocumentHTML(t *testing.T) {
	as := assert.New(t)
	tbl, err := ReadDocument(strings.NewReader(sampleReport), FormatAuto, "")
	require.NoError(t, err)

	as.Equal("License Report", tbl.Title)
	as.Equal([]string{"Display Name", "UPN", "Licenses"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	as.Equal([]string{"Amy Lee", "amy@contoso.com", "E5"}, tbl.Rows[0].Cells)
	as.Equal([]string{"Bob Stone", "bob@contoso.com", "E3"}, tbl.Rows[1].Cells)
	as.Equal(0, tbl.Rows[0].Index)
	as.Equal(1, tbl.Rows[1].Index)
}

func TestReadDocumentTitleFallsBackToTitleTag(t *testing.T) {
	doc := `<html><head><title>Weekly Sign-In Report</title></head><body>
<table><tr><th>A</th></tr><tr><td>1</td></tr></table></body></html>`
	tbl, err := ReadDocument(strings.NewReader(doc), FormatHTML, "")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Sign-In Report", tbl.Title)
}

func TestReadDocumentHeaderlessFirstRow(t *testing.T) {
	as := assert.New(t)
	doc := `<table><tr><th>Name</th><th>Score</th></tr><tr><td>a</td><td>1</td></tr></table>`
	tbl, err := ReadDocument(strings.NewReader(doc), FormatHTML, "")
	require.NoError(t, err)
	as.Equal([]string{"Name", "Score"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	as.Equal([]string{"a", "1"}, tbl.Rows[0].Cells)
}

func TestReadDocumentSkipsPlaceholderRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
	}{
		{"class flag", `<tr class="no-data"><td>nothing here</td></tr>`},
		{"colspan", `<tr><td colspan="3">No data available in table</td></tr>`},
		{"message text", `<tr><td>No records found</td></tr>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := `<table><thead><tr><th>A</th><th>B</th><th>C</th></tr></thead><tbody>` + tc.row + `</tbody></table>`
			tbl, err := ReadDocument(strings.NewReader(doc), FormatHTML, "")
			require.NoError(t, err)
			assert.Empty(t, tbl.Rows)
			assert.True(t, tbl.Empty())
		})
	}
}

func TestReadDocumentDuplicateHeaders(t *testing.T) {
	as := assert.New(t)
	doc := `<table><thead><tr><th>Name</th><th>Usage</th><th>Usage</th></tr></thead>
<tbody><tr><td>amy</td><td>10</td><td>20</td></tr></tbody></table>`
	tbl, err := ReadDocument(strings.NewReader(doc), FormatHTML, "")
	require.NoError(t, err)
	as.Equal([]string{"Name", "Usage", "Usage (2)"}, tbl.Columns)
	as.Equal("10", tbl.Value(tbl.Rows[0], "Usage"))
	as.Equal("20", tbl.Value(tbl.Rows[0], "Usage (2)"))
}

func TestReadDocumentRaggedRows(t *testing.T) {
	as := assert.New(t)
	doc := `<table><thead><tr><th>A</th><th>B</th></tr></thead>
<tbody><tr><td>1</td></tr><tr><td>2</td><td>3</td><td>4</td></tr></tbody></table>`
	tbl, err := ReadDocument(strings.NewReader(doc), FormatHTML, "")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	as.Equal([]string{"1", ""}, tbl.Rows[0].Cells)
	as.Equal([]string{"2", "3"}, tbl.Rows[1].Cells)
}

func TestReadDocumentEmptyInputs(t *testing.T) {
	for _, in := range []string{"", "<html><body><p>hi</p></body></html>", "<table></table>"} {
		tbl, err := ReadDocument(strings.NewReader(in), FormatHTML, "")
		require.NoError(t, err, "input %q", in)
		assert.True(t, tbl.Empty())
	}
}

func TestReadDocumentCSV(t *testing.T) {
	as := assert.New(t)
	in := "\xef\xbb\xbfName,Score\r\n\"Lee, Amy\",2\r\nBob,10\r\n"
	tbl, err := ReadDocument(strings.NewReader(in), FormatAuto, "User Report")
	require.NoError(t, err)
	as.Equal("User Report", tbl.Title)
	as.Equal([]string{"Name", "Score"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	as.Equal([]string{"Lee, Amy", "2"}, tbl.Rows[0].Cells)
}

func TestReadDocumentCSVRagged(t *testing.T) {
	in := "A,B,C\n1,2\n4,5,6,7\n"
	tbl, err := ReadDocument(strings.NewReader(in), FormatCSV, "")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"1", "2", ""}, tbl.Rows[0].Cells)
	assert.Equal(t, []string{"4", "5", "6"}, tbl.Rows[1].Cells)
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<html>", FormatHTML},
		{"\xef\xbb\xbf  <table>", FormatHTML},
		{"\n\t<!DOCTYPE html>", FormatHTML},
		{"Name,Score", FormatCSV},
		{"", FormatCSV},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectFormat([]byte(tc.in)), "input %q", tc.in)
	}
}
