package parse

import (
	"encoding/csv"
	"io"
	"strings"

	"reportview/internal/model"
	"reportview/internal/util"
)

// parseCSV reads a delimited report: first record is the header, every
// later record one row. Ragged records are padded or truncated to the
// header width rather than rejected.
func parseCSV(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return model.NewTable("", nil, nil), nil
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], string(utf8BOM))
	}
	for i := range headers {
		headers[i] = util.CollapseSpace(headers[i])
	}

	rows := make([]model.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		cells := make([]string, len(headers))
		for i := range cells {
			if i < len(rec) {
				cells[i] = rec[i]
			}
		}
		rows = append(rows, model.Row{Index: len(rows), Cells: cells})
	}
	return model.NewTable("", headers, rows), nil
}
