package parse

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"reportview/internal/model"
	"reportview/internal/util"
)

// parseHTML extracts the report title and the first <table> from a rendered
// report document. Header cells come from <thead> (or the table's first row
// when there is none); every later <tr> becomes one Row. Placeholder rows
// the renderer emits for empty reports are skipped.
func parseHTML(r io.Reader) (*model.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	title := findTitle(doc)
	tbl := findFirst(doc, "table")
	if tbl == nil {
		return model.NewTable(title, nil, nil), nil
	}

	trs := tableRows(tbl)
	if len(trs) == 0 {
		return model.NewTable(title, nil, nil), nil
	}

	headers, bodyStart := headerCells(trs)
	if len(headers) == 0 {
		return model.NewTable(title, nil, nil), nil
	}

	rows := make([]model.Row, 0, len(trs)-bodyStart)
	for _, tr := range trs[bodyStart:] {
		cells, spans := rowCells(tr)
		if placeholderRow(tr, cells, spans, len(headers)) {
			continue
		}
		// Pad or truncate ragged rows to the header width.
		if len(cells) < len(headers) {
			for len(cells) < len(headers) {
				cells = append(cells, "")
			}
		} else if len(cells) > len(headers) {
			cells = cells[:len(headers)]
		}
		rows = append(rows, model.Row{Index: len(rows), Cells: cells})
	}
	return model.NewTable(title, headers, rows), nil
}

// findTitle prefers the first non-empty <h1>, then <title>.
func findTitle(doc *html.Node) string {
	if h1 := findFirst(doc, "h1"); h1 != nil {
		if s := util.CollapseSpace(textContent(h1)); s != "" {
			return s
		}
	}
	if t := findFirst(doc, "title"); t != nil {
		return util.CollapseSpace(textContent(t))
	}
	return ""
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// tableRows collects the <tr> nodes belonging to this table, in document
// order, without descending into nested tables.
func tableRows(tbl *html.Node) []*html.Node {
	var trs []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "table":
				continue
			case "tr":
				trs = append(trs, c)
			default:
				walk(c)
			}
		}
	}
	walk(tbl)
	return trs
}

// headerCells picks the header row: a row inside <thead>, or the first row
// when it holds <th> cells, or failing both the first row outright. Returns
// the collapsed header texts and the index where body rows start.
func headerCells(trs []*html.Node) ([]string, int) {
	for i, tr := range trs {
		if insideTag(tr, "thead") {
			cells, _ := rowCells(tr)
			return cells, i + 1
		}
	}
	cells, _ := rowCells(trs[0])
	return cells, 1
}

func insideTag(n *html.Node, tag string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return true
		}
		if p.Type == html.ElementNode && p.Data == "table" {
			return false
		}
	}
	return false
}

// rowCells returns the collapsed text of each <td>/<th> plus the largest
// colspan seen on the row.
func rowCells(tr *html.Node) ([]string, int) {
	var cells []string
	maxSpan := 1
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cells = append(cells, util.CollapseSpace(textContent(c)))
		if v := attr(c, "colspan"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > maxSpan {
				maxSpan = n
			}
		}
	}
	return cells, maxSpan
}

// placeholderRow recognizes the "no data" row an empty report renders:
// flagged by class, or a single cell spanning the header width, or a single
// cell carrying a known placeholder message.
func placeholderRow(tr *html.Node, cells []string, maxSpan, headerLen int) bool {
	if cls := strings.ToLower(attr(tr, "class")); cls != "" {
		if strings.Contains(cls, "no-data") || strings.Contains(cls, "nodata") || strings.Contains(cls, "placeholder") {
			return true
		}
	}
	if len(cells) != 1 || headerLen <= 1 {
		return false
	}
	if maxSpan >= headerLen {
		return true
	}
	low := strings.ToLower(cells[0])
	return strings.Contains(low, "no data") || strings.Contains(low, "no records") || strings.Contains(low, "no matching")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates the text nodes under n, skipping script/style.
// A <br> counts as whitespace so multi-line cells keep their word breaks.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "br":
				b.WriteByte(' ')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
