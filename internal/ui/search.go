package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// searchDebounce is the quiet period after the last keystroke before the
// filter recomputes.
const searchDebounce = 250 * time.Millisecond

// armSearchTick schedules the debounced recompute. Each call invalidates
// any tick already in flight.
func (m *Model) armSearchTick() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg { return searchTickMsg{seq: seq} })
}

// applySearch pushes the input value into the engine and rebuilds the
// grid.
func (m *Model) applySearch() {
	m.view.SetSearch(strings.TrimSpace(m.input.Value()))
	m.refreshTable()
	m.ensureCursorVisible()
}

func (m *Model) beginInlineSearch() {
	m.inlineMode = inlineSearch
	m.input.Placeholder = "search all columns"
	m.input.Prompt = "/"
	m.input.SetValue(m.view.Filter.Search)
	m.input.CursorEnd()
	m.input.ShowSuggestions = true
	m.input.Focus()
}

func (m *Model) beginInlineExpr() {
	m.inlineMode = inlineExpr
	m.input.Placeholder = "expression, e.g. [Total Size] > 1000"
	m.input.Prompt = "x: "
	m.input.SetValue(m.view.Filter.Expr)
	m.input.CursorEnd()
	m.input.ShowSuggestions = false
	m.input.Focus()
}

func (m *Model) beginInlineGoto() {
	m.inlineMode = inlineGoto
	m.input.Placeholder = "page number"
	m.input.Prompt = ": "
	m.input.SetValue("")
	m.input.ShowSuggestions = false
	m.input.Focus()
}

func (m *Model) endInline() {
	m.inlineMode = inlineNone
	m.input.Blur()
	m.input.SetValue("")
}

// ensureCursorVisible nudges the table's internal viewport so the cursor
// row is on screen after an external cursor move.
func (m *Model) ensureCursorVisible() {
	cur := m.tbl.Cursor()
	rows := m.tbl.Rows()
	if len(rows) == 0 {
		return
	}
	if cur < len(rows)-1 {
		m.tbl.MoveDown(1)
		m.tbl.MoveUp(1)
		return
	}
	if cur > 0 {
		m.tbl.MoveUp(1)
		m.tbl.MoveDown(1)
		return
	}
	m.tbl.SetCursor(cur)
}
