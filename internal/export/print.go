package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"reportview/internal/textview"
	"reportview/internal/util/logx"
)

// printTier hands the plain-text rendering to the system spooler. It is
// the last resort: no file comes out, the pages leave through the printer.
type printTier struct{}

func (printTier) Name() string { return "print" }

func (printTier) Export(ctx context.Context, doc *Document, _ string) error {
	_, err := Print(ctx, doc)
	return err
}

// Print renders the collection as plain text and pipes it to lp or lpr,
// returning the spooler used.
func Print(ctx context.Context, doc *Document) (string, error) {
	if len(doc.Rows) == 0 {
		return "", ErrNoRows
	}
	spooler, err := findSpooler()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := textview.Render(&buf, doc.Title, doc.Columns, doc.Rows, 0); err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, spooler)
	cmd.Stdin = &buf
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s: %v: %s", spooler, err, bytes.TrimSpace(out))
	}
	logx.Infof("print: %d rows sent to %s", len(doc.Rows), spooler)
	return spooler, nil
}

func findSpooler() (string, error) {
	for _, name := range []string{"lp", "lpr"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no print spooler (lp or lpr) on PATH")
}
