package parse

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"reportview/internal/model"
	"reportview/internal/util/logx"
)

// Format names accepted by ReadDocument.
const (
	FormatAuto = "auto"
	FormatHTML = "html"
	FormatCSV  = "csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadDocument builds the row model from a rendered report document.
// The format is sniffed from the first bytes unless forced. A document with
// no header cells or no body rows is not an error: the returned Table is
// empty and the caller shows the no-data placeholder.
func ReadDocument(r io.Reader, format, titleOverride string) (*model.Table, error) {
	br := bufio.NewReader(r)
	if format == "" || format == FormatAuto {
		head, _ := br.Peek(512)
		format = DetectFormat(head)
		logx.Debugf("parse: sniffed format=%s", format)
	}
	var (
		t   *model.Table
		err error
	)
	switch format {
	case FormatHTML:
		t, err = parseHTML(br)
	case FormatCSV:
		t, err = parseCSV(br)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if titleOverride != "" {
		t.Title = titleOverride
	}
	logx.Infof("parse: format=%s title=%q columns=%d rows=%d", format, t.Title, len(t.Columns), len(t.Rows))
	return t, nil
}

// DetectFormat sniffs a document prefix: markup starts with '<' once the
// BOM and leading whitespace are out of the way, anything else is CSV.
func DetectFormat(head []byte) string {
	head = bytes.TrimPrefix(head, utf8BOM)
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) > 0 && head[0] == '<' {
		return FormatHTML
	}
	return FormatCSV
}
