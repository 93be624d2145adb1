package export

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"reportview/internal/util/logx"
)

// fontWait bounds the system font directory scan. No font inside the
// window means the tier fails and the raster fallback takes over.
const fontWait = 3 * time.Second

// preferredFonts are tried by name before falling back to the first TTF
// the scan saw.
var preferredFonts = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"NotoSans-Regular.ttf",
	"FreeSans.ttf",
	"Arial.ttf",
}

// vectorTier lays the whole collection out as ruled table pages with a
// Unicode TTF, so any script the report carries survives into the PDF.
type vectorTier struct{}

func (vectorTier) Name() string { return "vector" }

func (vectorTier) Export(ctx context.Context, doc *Document, path string) error {
	fctx, cancel := context.WithTimeout(ctx, fontWait)
	defer cancel()
	fontPath, err := findUnicodeFont(fctx, doc.FontDirs)
	if err != nil {
		return fmt.Errorf("font discovery: %w", err)
	}
	logx.Debugf("vector export: using font %s", fontPath)

	orient := "P"
	if doc.Landscape {
		orient = "L"
	}
	pdf := fpdf.New(orient, "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8Font("report", "", fontPath)
	if pdf.Err() {
		return fmt.Errorf("register font %s: %v", fontPath, pdf.Error())
	}
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("report", "", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	bottom := pageH - 16.0

	pdf.SetFont("report", "", 14)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(usable, 8, doc.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := columnWidths(pdf, doc, usable)
	header := func() {
		pdf.SetFont("report", "", 8)
		pdf.SetFillColor(225, 231, 239)
		pdf.SetTextColor(20, 20, 20)
		pdf.SetDrawColor(170, 170, 170)
		for i, c := range doc.Columns {
			pdf.CellFormat(widths[i], 7, clipText(pdf, c, widths[i]), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	const rowH = 6.0
	fill := false
	for ri, r := range doc.Rows {
		if ri%64 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if pdf.GetY()+rowH > bottom {
			pdf.AddPage()
			header()
		}
		pdf.SetFont("report", "", 8)
		if fill {
			pdf.SetFillColor(245, 247, 250)
		}
		for i := range doc.Columns {
			cell := ""
			if i < len(r.Cells) {
				cell = r.Cells[i]
			}
			pdf.CellFormat(widths[i], rowH, clipText(pdf, cell, widths[i]), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(path)
}

// columnWidths sizes columns proportionally to their content (sampled over
// the first rows), clamped and then scaled to fill the usable width.
func columnWidths(pdf *fpdf.Fpdf, doc *Document, usable float64) []float64 {
	pdf.SetFont("report", "", 8)
	widths := make([]float64, len(doc.Columns))
	for i, c := range doc.Columns {
		widths[i] = pdf.GetStringWidth(c) + 4
	}
	sample := doc.Rows
	if len(sample) > 200 {
		sample = sample[:200]
	}
	for _, r := range sample {
		for i := range doc.Columns {
			if i >= len(r.Cells) {
				continue
			}
			if w := pdf.GetStringWidth(r.Cells[i]) + 4; w > widths[i] {
				widths[i] = w
			}
		}
	}
	const minW, maxW = 14.0, 80.0
	total := 0.0
	for i := range widths {
		if widths[i] < minW {
			widths[i] = minW
		}
		if widths[i] > maxW {
			widths[i] = maxW
		}
		total += widths[i]
	}
	if total <= 0 {
		return widths
	}
	scale := usable / total
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}

// clipText trims a cell to its column width, marking the cut.
func clipText(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w-2 {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if pdf.GetStringWidth(string(runes)+"...") <= w-2 {
			return string(runes) + "..."
		}
	}
	return ""
}

func fontRoots(extra []string) []string {
	roots := append([]string{}, extra...)
	roots = append(roots, "/usr/share/fonts", "/usr/local/share/fonts")
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, ".fonts"), filepath.Join(home, ".local/share/fonts"))
	}
	return roots
}

// findUnicodeFont scans the font directories for a usable TTF, preferring
// well-known sans faces. The context bounds the walk; whatever was found
// before expiry still counts.
func findUnicodeFont(ctx context.Context, extra []string) (string, error) {
	first := ""
	byName := map[string]string{}
	for _, root := range fontRoots(extra) {
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctx.Err() != nil {
				return fs.SkipAll
			}
			if d.IsDir() {
				return nil
			}
			name := strings.ToLower(d.Name())
			if !strings.HasSuffix(name, ".ttf") {
				return nil
			}
			if first == "" {
				first = p
			}
			if _, ok := byName[name]; !ok {
				byName[name] = p
			}
			return nil
		})
		if ctx.Err() != nil {
			break
		}
	}
	for _, want := range preferredFonts {
		if p, ok := byName[strings.ToLower(want)]; ok {
			return p, nil
		}
	}
	if first != "" {
		return first, nil
	}
	if ctx.Err() != nil {
		return "", fmt.Errorf("font scan timed out after %s", fontWait)
	}
	return "", fmt.Errorf("no TTF font found under %s", strings.Join(fontRoots(extra), ", "))
}
