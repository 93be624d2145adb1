package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"reportview/internal/util"
	"reportview/internal/util/logx"
)

const (
	rasterMargin   = 12 // px around the table
	rasterLineH    = 16 // px per text line, Face7x13 plus leading
	rasterAdvance  = 7  // px per glyph of the fixed-width face
	rasterColGap   = 2  // blank columns between cells
	rasterMinColW  = 6  // chars
	rasterMaxColW  = 44 // chars
	rasterMaxPages = 40
	rasterBudget   = 4 << 20 // JPEG bytes before stepping the quality down
)

var jpegQualities = []int{90, 75, 60, 45}

// rasterTier draws the table with the built-in bitmap face and ships it
// as JPEG page images. It needs no system fonts at all, at the cost of
// folding non-ASCII text.
type rasterTier struct{}

func (rasterTier) Name() string { return "raster" }

func (rasterTier) Export(ctx context.Context, doc *Document, path string) error {
	img, err := renderTableImage(ctx, doc)
	if err != nil {
		return err
	}

	orient := "P"
	if doc.Landscape {
		orient = "L"
	}
	pdf := fpdf.New(orient, "mm", "A4", "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(false, 0)
	pageW, pageH := pdf.GetPageSize()
	usableW := pageW - 16
	usableH := pageH - 16

	b := img.Bounds()
	if b.Dy() < 3*rasterLineH {
		// Nothing meaningful was drawn; ship a diagnostic page instead of
		// a blank document.
		return writeDiagnostic(pdf, doc, path, "rendered table image is empty")
	}

	quality := pickQuality(img)
	sliceH := int(float64(b.Dx()) * usableH / usableW)
	if sliceH < rasterLineH {
		sliceH = rasterLineH
	}
	pages := (b.Dy() + sliceH - 1) / sliceH
	truncated := false
	if pages > rasterMaxPages {
		pages = rasterMaxPages
		truncated = true
	}

	opt := fpdf.ImageOptions{ImageType: "JPEG"}
	var buf bytes.Buffer
	for i := 0; i < pages; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		top := b.Min.Y + i*sliceH
		bot := top + sliceH
		if bot > b.Max.Y {
			bot = b.Max.Y
		}
		buf.Reset()
		sub := img.SubImage(image.Rect(b.Min.X, top, b.Max.X, bot))
		if err := jpeg.Encode(&buf, sub, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("table-%d", i+1)
		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(buf.Bytes()))
		hMM := usableW * float64(bot-top) / float64(b.Dx())
		pdf.ImageOptions(name, 8, 8, usableW, hMM, false, opt, 0, "")
	}
	if truncated {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(0, 8, fmt.Sprintf("Output truncated at %d pages (%d rows in the collection).",
			rasterMaxPages, len(doc.Rows)), "", 1, "L", false, 0, "")
	}
	if pdf.Err() {
		return pdf.Error()
	}
	logx.Debugf("raster export: %d page(s) at jpeg quality %d", pages, quality)
	return pdf.OutputFileAndClose(path)
}

// renderTableImage draws header and rows into one tall RGBA image with
// the 7x13 bitmap face. Cell text is folded to ASCII first since the face
// has no coverage beyond it.
func renderTableImage(ctx context.Context, doc *Document) (*image.RGBA, error) {
	widths := make([]int, len(doc.Columns))
	header := make([]string, len(doc.Columns))
	for i, c := range doc.Columns {
		header[i] = util.FoldASCII(c)
		widths[i] = len(header[i])
	}
	body := make([][]string, len(doc.Rows))
	for ri, r := range doc.Rows {
		if ri%256 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		cells := make([]string, len(doc.Columns))
		for i := range doc.Columns {
			if i < len(r.Cells) {
				cells[i] = util.FoldASCII(r.Cells[i])
			}
			if n := len(cells[i]); n > widths[i] {
				widths[i] = n
			}
		}
		body[ri] = cells
	}

	totalChars := 0
	for i := range widths {
		if widths[i] < rasterMinColW {
			widths[i] = rasterMinColW
		}
		if widths[i] > rasterMaxColW {
			widths[i] = rasterMaxColW
		}
		totalChars += widths[i] + rasterColGap
	}
	w := 2*rasterMargin + totalChars*rasterAdvance
	h := 2*rasterMargin + (len(body)+2)*rasterLineH
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	band := image.Rect(0, rasterMargin, w, rasterMargin+rasterLineH)
	draw.Draw(img, band, &image.Uniform{color.RGBA{226, 232, 240, 255}}, image.Point{}, draw.Src)

	ink := image.NewUniform(color.RGBA{30, 41, 59, 255})
	drawLine := func(line int, cells []string) {
		x := rasterMargin
		y := rasterMargin + line*rasterLineH + 12
		for i, cell := range cells {
			if len(cell) > widths[i] {
				cell = cell[:widths[i]-3] + "..."
			}
			d := &font.Drawer{Dst: img, Src: ink, Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
			d.DrawString(cell)
			x += (widths[i] + rasterColGap) * rasterAdvance
		}
	}
	drawLine(0, header)
	rule := image.Rect(rasterMargin, rasterMargin+rasterLineH+2, w-rasterMargin, rasterMargin+rasterLineH+3)
	draw.Draw(img, rule, ink, image.Point{}, draw.Src)
	for ri, cells := range body {
		drawLine(ri+2, cells)
	}
	return img, nil
}

// pickQuality walks the quality ladder down until the whole image encodes
// within the byte budget, keeping the lowest step as the floor.
func pickQuality(img image.Image) int {
	var buf bytes.Buffer
	for _, q := range jpegQualities {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			break
		}
		if buf.Len() <= rasterBudget {
			return q
		}
	}
	return jpegQualities[len(jpegQualities)-1]
}

// writeDiagnostic ships a one-page summary when there is no table image
// worth embedding, so the export never ends in a blank document.
func writeDiagnostic(pdf *fpdf.Fpdf, doc *Document, path, reason string) error {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 9, "Export diagnostic", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		"Report: " + util.FoldASCII(doc.Title),
		fmt.Sprintf("Columns: %d, rows: %d", len(doc.Columns), len(doc.Rows)),
		"Reason: " + reason,
	} {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}
	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(path)
}
