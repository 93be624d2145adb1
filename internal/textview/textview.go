// Package textview renders a report table as plain text. It backs the
// non-interactive mode (stdout is not a terminal) and the print export,
// which pipes the same rendering to the system spooler.
package textview

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"reportview/internal/model"
)

// Render writes the title, the table, and a closing row-count line.
// width caps the rendered table width when positive; zero means the
// natural content width.
func Render(w io.Writer, title string, columns []string, rows []model.Row, width int) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
			return err
		}
	}
	opts := []tablewriter.Option{
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	}
	if width > 0 {
		opts = append(opts, tablewriter.WithMaxWidth(width))
	}
	t := tablewriter.NewTable(w, opts...)
	t.Header(columns)
	for _, r := range rows {
		if err := t.Append(r.Cells); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d row(s)\n", len(rows))
	return err
}
