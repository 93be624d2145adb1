package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reportview/internal/config"
)

func (m *Model) buildHelpItems() []helpItem {
	km := m.keymap
	return []helpItem{
		{group: "Navigation", text: "Previous row", key: tea.Key{Type: tea.KeyUp}},
		{group: "Navigation", text: "Next row", key: tea.Key{Type: tea.KeyDown}},
		{group: "Navigation", text: "Go to top", key: km.Top},
		{group: "Navigation", text: "Go to bottom", key: km.Bottom},
		{group: "Navigation", text: "Previous column", key: tea.Key{Type: tea.KeyLeft}},
		{group: "Navigation", text: "Next column", key: tea.Key{Type: tea.KeyRight}},

		{group: "Pages", text: "Previous page", key: km.PrevPage},
		{group: "Pages", text: "Next page", key: km.NextPage},
		{group: "Pages", text: "First page", key: km.FirstPage},
		{group: "Pages", text: "Last page", key: km.LastPage},
		{group: "Pages", text: "Go to page", key: km.GotoPage},
		{group: "Pages", text: "Cycle page size", key: km.PageSize},

		{group: "Filter", text: "Search all columns", key: km.Search},
		{group: "Filter", text: "Filter column by value", key: km.ValueFilter},
		{group: "Filter", text: "Expression filter", key: km.ExprFilter},
		{group: "Filter", text: "Clear all filters", key: km.ClearFilter},

		{group: "Sort", text: "Sort by selected column", key: km.Sort},

		{group: "Export", text: "Export CSV", key: km.ExportCSV},
		{group: "Export", text: "Export PDF", key: km.ExportPDF},
		{group: "Export", text: "Print", key: km.Print},

		{group: "Actions", text: "Row details", key: km.Detail},
		{group: "Actions", text: "Copy row", key: km.CopyRow},
		{group: "Actions", text: "Application logs", key: km.AppLogs},
		{group: "Actions", text: "Help", key: km.Help},
		{group: "Actions", text: "Quit", key: km.Quit},
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		// Reserve one line for the inline/filter line and one for status
		h := msg.Height - 3
		if h < 1 {
			h = 1
		}
		m.tbl.SetHeight(h)
		m.tbl.SetWidth(msg.Width)
		m.autofitMaxCols()
		m.refreshTable()
		if m.modalActive {
			m.resizeModal()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modalActive {
			switch m.modalKind {
			case modalHelp:
				switch {
				case msg.Type == tea.KeyUp:
					if m.helpSel > 0 {
						m.helpSel--
						m.modalVP.SetContent(m.renderHelpBody())
					}
					return m, nil
				case msg.Type == tea.KeyDown:
					if m.helpSel+1 < len(m.helpItems) {
						m.helpSel++
						m.modalVP.SetContent(m.renderHelpBody())
					}
					return m, nil
				case msg.Type == tea.KeyEnter:
					if len(m.helpItems) > 0 {
						it := m.helpItems[m.helpSel]
						m.modalActive = false
						return m, keyCmd(it.key)
					}
					return m, nil
				case msg.Type == tea.KeyEsc, msg.String() == "q", msg.String() == "?":
					m.modalActive = false
					return m, nil
				}
				return m, nil
			case modalValues:
				switch {
				case msg.Type == tea.KeyUp:
					if m.valueSel > 0 {
						m.valueSel--
						m.renderValuesBody()
					}
					return m, nil
				case msg.Type == tea.KeyDown:
					if m.valueSel+1 < len(m.valueItems) {
						m.valueSel++
						m.renderValuesBody()
					}
					return m, nil
				case msg.Type == tea.KeyEnter:
					if m.valueSel >= 0 && m.valueSel < len(m.valueItems) {
						val := m.valueItems[m.valueSel].Value
						// Picking the applied value again clears it.
						if m.view.Filter.Columns[m.valueCol] == val {
							m.view.SetColumnFilter(m.valueCol, "")
						} else {
							m.view.SetColumnFilter(m.valueCol, val)
						}
						m.modalActive = false
						m.tbl.SetCursor(0)
						m.refreshTable()
					}
					return m, nil
				case msg.Type == tea.KeyEsc, msg.String() == "q":
					m.modalActive = false
					return m, nil
				}
				var cmd tea.Cmd
				m.modalVP, cmd = m.modalVP.Update(msg)
				return m, cmd
			default: // detail, logs
				if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || msg.String() == "q" {
					m.modalActive = false
					return m, nil
				}
				if msg.String() == "c" || msg.String() == "C" {
					copyToClipboard(m.modalBody)
					return m, m.notifySuccess("copied to clipboard")
				}
				var cmd tea.Cmd
				m.modalVP, cmd = m.modalVP.Update(msg)
				return m, cmd
			}
		}
		if m.inlineMode != inlineNone {
			if msg.Type == tea.KeyEsc {
				mode := m.inlineMode
				m.endInline()
				if mode == inlineSearch {
					// Abandoning search entry clears the term
					m.view.SetSearch("")
					m.refreshTable()
				}
				return m, nil
			}
			if msg.Type == tea.KeyEnter {
				q := strings.TrimSpace(m.input.Value())
				switch m.inlineMode {
				case inlineSearch:
					m.searchSeq++ // drop any pending debounce tick
					m.endInline()
					m.view.SetSearch(q)
					m.refreshTable()
					m.ensureCursorVisible()
					return m, nil
				case inlineExpr:
					if err := m.view.SetExpr(q); err != nil {
						return m, m.notifyError(fmt.Sprintf("bad expression: %v", err))
					}
					m.endInline()
					m.tbl.SetCursor(0)
					m.refreshTable()
					if q != "" {
						return m, m.notifyInfo("expression filter applied")
					}
					return m, nil
				case inlineGoto:
					m.endInline()
					n, err := strconv.Atoi(q)
					if err != nil || n < 1 || n > m.view.TotalPages() {
						return m, m.notifyError(fmt.Sprintf("no page %q (1-%d)", q, m.view.TotalPages()))
					}
					m.view.GoTo(n)
					m.tbl.SetCursor(0)
					m.refreshTable()
					return m, nil
				}
				return m, nil
			}
			// Everything else edits the input. Search keystrokes re-arm
			// the quiet-period tick so the filter recomputes on pause.
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if m.inlineMode == inlineSearch {
				return m, tea.Batch(cmd, m.armSearchTick())
			}
			return m, cmd
		}

		// Shortcuts
		switch {
		case keyMatches(msg, m.keymap.Search):
			m.beginInlineSearch()
			return m, textinput.Blink
		case keyMatches(msg, m.keymap.ValueFilter):
			m.openValuesModal()
			return m, nil
		case keyMatches(msg, m.keymap.ExprFilter):
			m.beginInlineExpr()
			return m, textinput.Blink
		case keyMatches(msg, m.keymap.ClearFilter):
			m.view.ResetFilters()
			m.tbl.SetCursor(0)
			m.refreshTable()
			return m, m.notifyInfo("filters cleared")
		case keyMatches(msg, m.keymap.Sort):
			col := m.currentColumn()
			if col == "" {
				return m, nil
			}
			m.view.SortBy(col)
			m.refreshTable()
			return m, nil
		case keyMatches(msg, m.keymap.PrevPage):
			m.view.PrevPage()
			m.tbl.SetCursor(0)
			m.refreshTable()
			return m, nil
		case keyMatches(msg, m.keymap.NextPage):
			m.view.NextPage()
			m.tbl.SetCursor(0)
			m.refreshTable()
			return m, nil
		case keyMatches(msg, m.keymap.FirstPage):
			m.view.FirstPage()
			m.tbl.SetCursor(0)
			m.refreshTable()
			return m, nil
		case keyMatches(msg, m.keymap.LastPage):
			m.view.LastPage()
			m.tbl.SetCursor(0)
			m.refreshTable()
			return m, nil
		case keyMatches(msg, m.keymap.GotoPage):
			m.beginInlineGoto()
			return m, textinput.Blink
		case keyMatches(msg, m.keymap.PageSize):
			return m, m.cyclePageSize()
		case keyMatches(msg, m.keymap.ExportCSV):
			return m, m.beginExport("csv")
		case keyMatches(msg, m.keymap.ExportPDF):
			return m, m.beginExport("pdf")
		case keyMatches(msg, m.keymap.Print):
			return m, m.beginExport("print")
		case keyMatches(msg, m.keymap.CopyRow):
			return m, m.copyCurrentRow()
		case keyMatches(msg, m.keymap.Detail):
			m.openDetailModal()
			return m, nil
		case keyMatches(msg, m.keymap.AppLogs):
			m.openLogsModal()
			return m, nil
		case keyMatches(msg, m.keymap.Help):
			m.openHelpModal()
			return m, nil
		case msg.Type == tea.KeyLeft:
			m.selectPrevColumn()
			return m, nil
		case msg.Type == tea.KeyRight:
			m.selectNextColumn()
			return m, nil
		case keyMatches(msg, m.keymap.Top):
			m.tbl.SetCursor(0)
			return m, nil
		case keyMatches(msg, m.keymap.Bottom):
			if n := len(m.tbl.Rows()); n > 0 {
				m.tbl.SetCursor(n - 1)
			}
			return m, nil
		case keyMatches(msg, m.keymap.Quit):
			return m, tea.Quit
		}

	case searchTickMsg:
		if msg.seq == m.searchSeq && m.inlineMode == inlineSearch {
			m.applySearch()
		}
		return m, nil
	case noticeExpireMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	case exportDoneMsg:
		return m, m.finishExport(msg)
	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	// Clamp cursor to avoid wrap-around behavior
	if n := len(m.tbl.Rows()); n > 0 {
		if m.tbl.Cursor() < 0 {
			m.tbl.SetCursor(0)
		}
		if m.tbl.Cursor() >= n {
			m.tbl.SetCursor(n - 1)
		}
	}
	return m, cmd
}

// cyclePageSize steps through the fixed page-size choices, wrapping at
// the end. Changing the size always lands back on page 1.
func (m *Model) cyclePageSize() tea.Cmd {
	sizes := config.PageSizes
	next := sizes[0]
	for i, s := range sizes {
		if s == m.view.Page.Size {
			next = sizes[(i+1)%len(sizes)]
			break
		}
	}
	m.view.SetPageSize(next)
	m.tbl.SetCursor(0)
	m.refreshTable()
	return m.notifyInfo(fmt.Sprintf("page size %d", next))
}
