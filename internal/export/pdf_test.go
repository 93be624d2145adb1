package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportview/internal/model"
)

type stubTier struct {
	name      string
	err       error
	writeFile bool
	leftover  bool // simulate a tier that fails after partial output
	calls     *[]string
}

func (s stubTier) Name() string { return s.name }

func (s stubTier) Export(_ context.Context, _ *Document, path string) error {
	*s.calls = append(*s.calls, s.name)
	if s.writeFile || s.leftover {
		os.WriteFile(path, []byte("partial"), 0o644)
	}
	return s.err
}

func testDoc() *Document {
	cols, rows := sampleRows()
	tbl := model.NewTable("User Report", cols, rows)
	return NewDocument(tbl, tbl.Rows, true, nil)
}

func TestExportPDFFirstTierWins(t *testing.T) {
	as := assert.New(t)
	dir := t.TempDir()
	var calls []string
	tiers := []Tier{
		stubTier{name: "a", writeFile: true, calls: &calls},
		stubTier{name: "b", writeFile: true, calls: &calls},
	}
	out, err := ExportPDF(context.Background(), dir, testDoc(), tiers)
	require.NoError(t, err)
	as.Equal([]string{"a"}, calls)
	as.Equal("a", out.Tier)
	as.False(out.Degraded)
	as.FileExists(out.Path)
	as.Regexp(`^UserReport_\d{8}_\d{4}\.pdf$`, filepath.Base(out.Path))
}

func TestExportPDFFallsThroughToNextTier(t *testing.T) {
	as := assert.New(t)
	dir := t.TempDir()
	var calls []string
	tiers := []Tier{
		stubTier{name: "a", err: errors.New("no fonts"), leftover: true, calls: &calls},
		stubTier{name: "b", writeFile: true, calls: &calls},
		stubTier{name: "c", writeFile: true, calls: &calls},
	}
	out, err := ExportPDF(context.Background(), dir, testDoc(), tiers)
	require.NoError(t, err)
	as.Equal([]string{"a", "b"}, calls)
	as.Equal("b", out.Tier)
	as.True(out.Degraded)
	as.FileExists(out.Path)
}

func TestExportPDFAllTiersFailCollectsReasons(t *testing.T) {
	as := assert.New(t)
	dir := t.TempDir()
	var calls []string
	tiers := []Tier{
		stubTier{name: "a", err: errors.New("no fonts"), leftover: true, calls: &calls},
		stubTier{name: "b", err: errors.New("encode broke"), calls: &calls},
	}
	_, err := ExportPDF(context.Background(), dir, testDoc(), tiers)
	require.Error(t, err)
	as.Contains(err.Error(), "a: no fonts")
	as.Contains(err.Error(), "b: encode broke")
	// The failed tier's partial output was cleaned up.
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	as.Empty(entries)
}

func TestExportPDFFilelessTierReportsNoPath(t *testing.T) {
	as := assert.New(t)
	var calls []string
	tiers := []Tier{stubTier{name: "spool", calls: &calls}}
	out, err := ExportPDF(context.Background(), t.TempDir(), testDoc(), tiers)
	require.NoError(t, err)
	as.Empty(out.Path)
	as.Equal("spool", out.Tier)
}

func TestExportPDFEmptyCollection(t *testing.T) {
	var calls []string
	tiers := []Tier{stubTier{name: "a", writeFile: true, calls: &calls}}
	doc := &Document{Title: "User Report", Columns: []string{"A"}}
	_, err := ExportPDF(context.Background(), t.TempDir(), doc, tiers)
	assert.ErrorIs(t, err, ErrNoRows)
	assert.Empty(t, calls)
}

func TestExportPDFCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls []string
	tiers := []Tier{stubTier{name: "a", writeFile: true, calls: &calls}}
	_, err := ExportPDF(ctx, t.TempDir(), testDoc(), tiers)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

func TestRasterTierProducesReadablePDF(t *testing.T) {
	as := assert.New(t)
	path := filepath.Join(t.TempDir(), "out.pdf")
	err := rasterTier{}.Export(context.Background(), testDoc(), path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	as.True(bytes.HasPrefix(data, []byte("%PDF")), "PDF magic")
	as.Greater(len(data), 1000)
}

func TestRasterTierClampsPageCount(t *testing.T) {
	as := assert.New(t)
	cols := []string{"Name", "Value"}
	rows := make([]model.Row, 6000)
	for i := range rows {
		rows[i] = model.Row{Index: i, Cells: []string{fmt.Sprintf("user%04d", i), "1"}}
	}
	doc := &Document{Title: "User Report", Columns: cols, Rows: rows}
	path := filepath.Join(t.TempDir(), "big.pdf")
	require.NoError(t, rasterTier{}.Export(context.Background(), doc, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// One /Type /Page object per page; the clamp plus the truncation
	// notice bounds the count.
	s := string(data)
	pageCount := strings.Count(s, "/Type /Page") - strings.Count(s, "/Type /Pages")
	as.LessOrEqual(pageCount, rasterMaxPages+1)
	as.Greater(pageCount, 1)
}
