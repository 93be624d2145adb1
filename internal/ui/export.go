package ui

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"reportview/internal/export"
	"reportview/internal/util/logx"
)

// beginExport starts an export command for the current filtered
// collection. While one is running further requests are ignored; the
// busy flag is only ever cleared by the exportDoneMsg the command is
// guaranteed to emit.
func (m *Model) beginExport(kind string) tea.Cmd {
	if m.exporting {
		return m.notifyInfo(fmt.Sprintf("%s export still running, request ignored", m.exportKind))
	}
	if m.view.FilteredCount() == 0 {
		return m.notifyError("no rows to export")
	}
	m.exporting = true
	m.exportKind = kind

	doc := export.NewDocument(m.view.Table, m.view.Filtered(), m.cfg.Landscape, filepath.SplitList(m.cfg.FontDirs))
	outDir := m.cfg.OutDir
	ctx := m.ctx
	run := func() (msg tea.Msg) {
		res := exportDoneMsg{kind: kind, rows: len(doc.Rows)}
		// The done message must reach the update loop no matter how the
		// export ends, or the overlay would stick forever.
		defer func() {
			if r := recover(); r != nil {
				logx.Errorf("export: panic: %v", r)
				res.err = fmt.Errorf("export panic: %v", r)
			}
			msg = res
		}()
		switch kind {
		case "csv":
			res.path, res.err = export.ExportCSV(outDir, doc.Title, doc.Columns, doc.Rows)
		case "pdf":
			out, err := export.ExportPDF(ctx, outDir, doc, export.Tiers())
			res.path, res.tier, res.degraded, res.err = out.Path, out.Tier, out.Degraded, err
		case "print":
			res.tier, res.err = export.Print(ctx, doc)
			res.degraded = false
		}
		return nil
	}
	return tea.Batch(m.spin.Tick, run)
}

func (m *Model) finishExport(msg exportDoneMsg) tea.Cmd {
	m.exporting = false
	switch {
	case errors.Is(msg.err, export.ErrNoRows):
		return m.notifyError("no rows to export")
	case msg.err != nil:
		return m.notifyError(fmt.Sprintf("%s export failed: %v", msg.kind, msg.err))
	case msg.kind == "print":
		return m.notifySuccess(fmt.Sprintf("sent %d rows to %s", msg.rows, filepath.Base(msg.tier)))
	case msg.kind == "pdf" && msg.path == "":
		// The spooler tier won after the file renderers failed.
		return m.notifyInfo(fmt.Sprintf("PDF renderers failed, %d rows sent to the printer instead", msg.rows))
	case msg.kind == "pdf" && msg.degraded:
		return m.notifyInfo(fmt.Sprintf("saved %s via fallback renderer (%s)", filepath.Base(msg.path), msg.tier))
	default:
		return m.notifySuccess(fmt.Sprintf("saved %s (%d rows)", filepath.Base(msg.path), msg.rows))
	}
}

// copyCurrentRow puts the selected row on the clipboard as a
// tab-separated line.
func (m *Model) copyCurrentRow() tea.Cmd {
	rows := m.view.PageRows()
	idx := m.tbl.Cursor()
	if idx < 0 || idx >= len(rows) {
		return nil
	}
	copyToClipboard(m.view.Table.TSV(rows[idx]))
	return m.notifySuccess("row copied to clipboard")
}
