package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"
)

// refreshTable rebuilds the grid from the engine's active page. The
// engine already holds the filtered, sorted, paginated collection; this
// only projects the visible column window into bubbles rows.
func (m *Model) refreshTable() {
	cols := m.visibleColumns()
	widths := m.computeWidths(cols)
	m.applyColumns(cols, widths)

	pageRows := m.view.PageRows()
	rows := make([]table.Row, 0, len(pageRows))
	for _, r := range pageRows {
		row := make(table.Row, 0, len(cols))
		for i := range cols {
			cell := ""
			if ci := m.colOffset + i; ci < len(r.Cells) {
				cell = r.Cells[ci]
			}
			row = append(row, truncateCell(cell, widths[i]))
		}
		rows = append(rows, row)
	}
	m.tbl.SetRows(rows)
	if n := len(rows); n == 0 {
		m.tbl.SetCursor(0)
	} else if m.tbl.Cursor() >= n {
		m.tbl.SetCursor(n - 1)
	} else if m.tbl.Cursor() < 0 {
		m.tbl.SetCursor(0)
	}
}

// visibleColumns windows the full column list to what fits on screen.
func (m *Model) visibleColumns() []string {
	all := m.view.Table.Columns
	if len(all) == 0 {
		return all
	}
	if m.maxCols <= 0 {
		m.autofitMaxCols()
		if m.maxCols <= 0 {
			m.maxCols = 1
		}
	}
	if m.colOffset < 0 {
		m.colOffset = 0
	}
	if m.colOffset >= len(all) {
		if len(all) > m.maxCols {
			m.colOffset = len(all) - m.maxCols
		} else {
			m.colOffset = 0
		}
	}
	end := m.colOffset + m.maxCols
	if end > len(all) {
		end = len(all)
	}
	return all[m.colOffset:end]
}

// autofitMaxCols estimates how many columns fit the terminal width when
// drawn at their header-minimum widths.
func (m *Model) autofitMaxCols() {
	all := m.view.Table.Columns
	if len(all) == 0 {
		m.maxCols = 0
		return
	}
	width := m.termWidth
	if width <= 0 {
		width = 120
	}
	padR := 1
	sum := 0
	count := 0
	for i := m.colOffset; i < len(all); i++ {
		minW := headerMinWidth(all[i], i == m.selColIdx)
		need := sum + minW + (count+1)*(padR+1)
		if need > width {
			break
		}
		sum += minW
		count++
	}
	if count <= 0 {
		count = 1
	}
	m.maxCols = count
}

func (m *Model) applyColumns(cols []string, widths []int) {
	cs := make([]table.Column, 0, len(cols))
	for i, c := range cols {
		cs = append(cs, table.Column{Title: m.headerTitle(c, m.colOffset+i), Width: widths[i]})
	}
	m.tbl.SetColumns(cs)
}

// computeWidths sizes the visible columns from header and current page
// content, then squeezes or pads them to the terminal width. The last
// column soaks up leftover space.
func (m *Model) computeWidths(cols []string) []int {
	if len(cols) == 0 {
		return nil
	}
	tableW := m.termWidth
	if tableW <= 0 {
		tableW = 120
	}
	pageRows := m.view.PageRows()
	base := make([]int, len(cols))
	for i, c := range cols {
		w := headerMinWidth(c, (m.colOffset+i) == m.selColIdx)
		for _, r := range pageRows {
			if ci := m.colOffset + i; ci < len(r.Cells) {
				if cw := runewidth.StringWidth(r.Cells[ci]); cw > w {
					w = cw
				}
			}
		}
		if w > 40 {
			w = 40
		}
		base[i] = w
	}
	padR := 1
	avail := tableW - len(cols)*padR - (len(cols) - 1)
	if avail < 10 {
		avail = 10
	}
	sum := 0
	for _, w := range base {
		sum += w
	}
	if over := sum - avail; over > 0 {
		// Shrink the widest column first, never below its header width.
		for over > 0 {
			widest := -1
			for i := range base {
				minW := headerMinWidth(cols[i], (m.colOffset+i) == m.selColIdx)
				if base[i] > minW && (widest < 0 || base[i] > base[widest]) {
					widest = i
				}
			}
			if widest < 0 {
				break
			}
			base[widest]--
			over--
		}
	} else if over < 0 {
		base[len(base)-1] += -over
	}
	return base
}

func (m *Model) currentColumn() string {
	all := m.view.Table.Columns
	if len(all) == 0 {
		return ""
	}
	if m.selColIdx >= len(all) {
		m.selColIdx = len(all) - 1
	}
	if m.selColIdx < 0 {
		m.selColIdx = 0
	}
	return all[m.selColIdx]
}

func (m *Model) selectPrevColumn() {
	if m.selColIdx > 0 {
		m.selColIdx--
		if m.selColIdx < m.colOffset {
			m.colOffset = m.selColIdx
		}
		m.refreshTable()
	}
}

func (m *Model) selectNextColumn() {
	if m.selColIdx+1 < len(m.view.Table.Columns) {
		m.selColIdx++
		if m.selColIdx >= m.colOffset+m.maxCols {
			m.colOffset = m.selColIdx - (m.maxCols - 1)
			if m.colOffset < 0 {
				m.colOffset = 0
			}
		}
		m.refreshTable()
	}
}
