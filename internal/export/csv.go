package export

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"reportview/internal/model"
	"reportview/internal/util/logx"
)

// ErrNoRows is returned when an export is requested while the filtered
// collection is empty.
var ErrNoRows = errors.New("no rows to export")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the collection as RFC 4180 CSV: UTF-8 BOM, CRLF line
// endings, header row first, then the cells in column order. Quoting and
// quote doubling come from the codec.
func WriteCSV(w io.Writer, columns []string, rows []model.Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the collection to a timestamped file under dir and
// returns the full path.
func ExportCSV(dir, title string, columns []string, rows []model.Row) (string, error) {
	path := filepath.Join(dir, Filename(title, "csv", time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(f, columns, rows); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	logx.Infof("csv export: %d rows -> %s", len(rows), path)
	return path, nil
}
