package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reportview/internal/model"
	"reportview/internal/util/logx"
)

// settleDelay gives the caller's loading overlay a beat to paint before
// the heavier tier work starts.
const settleDelay = 150 * time.Millisecond

// Document is the snapshot a PDF tier renders: the filtered and sorted
// collection at the moment the export was requested, independent of the
// visible page.
type Document struct {
	Title     string
	Columns   []string
	Rows      []model.Row
	Landscape bool
	FontDirs  []string
}

// NewDocument snapshots a collection for export.
func NewDocument(t *model.Table, rows []model.Row, landscape bool, fontDirs []string) *Document {
	return &Document{
		Title:     t.Title,
		Columns:   t.Columns,
		Rows:      rows,
		Landscape: landscape,
		FontDirs:  fontDirs,
	}
}

// Tier is one export strategy. Export either produces a complete artifact
// or fails; a failed tier must not leave partial output for the next tier
// to trip over (the orchestrator removes the target path after a failure).
type Tier interface {
	Name() string
	Export(ctx context.Context, doc *Document, path string) error
}

// Outcome reports which strategy produced the export. Path is empty when
// the winning tier produced no file (the print spooler tier).
type Outcome struct {
	Path     string
	Tier     string
	Degraded bool
}

// Tiers returns the default strategy order: vector table, raster
// fallback, system print spooler.
func Tiers() []Tier {
	return []Tier{vectorTier{}, rasterTier{}, printTier{}}
}

// ExportPDF walks the tiers in order and returns the first success.
// Failures are logged and collected; when every tier fails the collected
// reasons come back as a single error.
func ExportPDF(ctx context.Context, dir string, doc *Document, tiers []Tier) (Outcome, error) {
	if len(doc.Rows) == 0 {
		return Outcome{}, ErrNoRows
	}
	select {
	case <-time.After(settleDelay):
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
	path := filepath.Join(dir, Filename(doc.Title, "pdf", time.Now()))
	var reasons []string
	for i, tier := range tiers {
		err := tier.Export(ctx, doc, path)
		if err == nil {
			out := Outcome{Path: path, Tier: tier.Name(), Degraded: i > 0}
			if _, statErr := os.Stat(path); statErr != nil {
				out.Path = ""
			}
			logx.Infof("pdf export: tier %s succeeded (%d rows)", tier.Name(), len(doc.Rows))
			return out, nil
		}
		os.Remove(path)
		logx.Warnf("pdf export: tier %s failed: %v", tier.Name(), err)
		reasons = append(reasons, fmt.Sprintf("%s: %v", tier.Name(), err))
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
	}
	return Outcome{}, fmt.Errorf("all export strategies failed: %s", strings.Join(reasons, "; "))
}
