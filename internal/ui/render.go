package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"reportview/internal/util/logx"
)

func (m *Model) View() string {
	main := m.renderMain()
	if m.exporting {
		return m.renderBusy(main)
	}
	if m.modalActive {
		dimmed := lipgloss.NewStyle().Faint(true).Render(main)
		return overlay(dimmed, m.renderModal())
	}
	return main
}

func (m *Model) renderMain() string {
	var grid string
	if m.view.NoData() {
		// The placeholder fully replaces the grid while nothing matches.
		w := m.termWidth
		if w <= 0 {
			w = 80
		}
		grid = lipgloss.Place(w, m.tbl.Height(), lipgloss.Center, lipgloss.Center,
			m.styles.Placeholder.Render("No matching records"))
	} else {
		grid = m.tbl.View()
	}

	var b strings.Builder
	b.WriteString(grid)
	b.WriteString("\n")
	b.WriteString(m.renderBottomLine())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// renderBottomLine is the line between grid and status bar: the active
// inline input with its hint, or a summary of whatever filters are on.
func (m *Model) renderBottomLine() string {
	if m.inlineMode != inlineNone {
		var hint string
		switch m.inlineMode {
		case inlineSearch:
			hint = "[enter]=apply  [esc]=clear"
		case inlineExpr:
			hint = "[enter]=apply  [esc]=cancel"
		case inlineGoto:
			hint = "[enter]=go  [esc]=cancel"
		}
		return m.input.View() + "  " + m.styles.Help.Render(hint)
	}
	if s := m.filterSummary(); s != "" {
		return m.styles.Status.Render(" "+s) + "  " + m.styles.Help.Render("["+keyLabel(m.keymap.ClearFilter)+"]=clear")
	}
	return ""
}

func (m *Model) filterSummary() string {
	f := m.view.Filter
	if f.Empty() {
		return ""
	}
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Search))
	}
	cols := make([]string, 0, len(f.Columns))
	for c := range f.Columns {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	for _, c := range cols {
		parts = append(parts, fmt.Sprintf("%s=%q", c, f.Columns[c]))
	}
	if f.Expr != "" {
		parts = append(parts, "expr "+f.Expr)
	}
	return "filters: " + strings.Join(parts, "  ")
}

func (m *Model) renderStatusLine() string {
	v := m.view
	left := fmt.Sprintf(" %s | %d/%d rows | page %d/%d | size %d",
		v.Table.Title, v.FilteredCount(), len(v.Table.Rows),
		v.Page.Page, v.TotalPages(), v.Page.Size)
	if v.Sort.Active() {
		g := sortAscGlyph
		if v.Sort.Desc {
			g = sortDescGlyph
		}
		left += fmt.Sprintf(" | sort %s%s", v.Sort.Column, g)
	}
	left += " | [?]=help"
	line := m.styles.Status.Render(left)
	if m.notice != "" {
		line += "  " + m.renderNotice()
	}
	return line
}

func (m *Model) renderBusy(main string) string {
	dimmed := lipgloss.NewStyle().Faint(true).Render(main)
	label := fmt.Sprintf("%s exporting %s, please wait", m.spin.View(), strings.ToUpper(m.exportKind))
	box := m.styles.PopupBox.Render(label)
	w, h := m.termWidth, m.termHeight
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return overlay(dimmed, lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box))
}

func (m *Model) openHelpModal() {
	m.helpItems = m.buildHelpItems()
	m.helpSel = 0
	m.modalKind = modalHelp
	m.modalTitle = "Help"
	m.modalActive = true
	m.resizeModal()
	m.modalVP.GotoTop()
	m.modalVP.SetContent(m.renderHelpBody())
}

func (m *Model) openValuesModal() {
	col := m.currentColumn()
	if col == "" {
		return
	}
	m.valueCol = col
	m.valueItems = m.view.Table.DistinctValues(col)
	m.valueSel = 0
	m.modalKind = modalValues
	m.modalTitle = "Filter " + col
	m.modalActive = true
	m.resizeModal()
	m.modalVP.GotoTop()
	m.renderValuesBody()
}

func (m *Model) openDetailModal() {
	rows := m.view.PageRows()
	idx := m.tbl.Cursor()
	if idx < 0 || idx >= len(rows) {
		return
	}
	r := rows[idx]
	var b strings.Builder
	for i, col := range m.view.Table.Columns {
		val := ""
		if i < len(r.Cells) {
			val = r.Cells[i]
		}
		fmt.Fprintf(&b, "%s\n  %s\n", m.styles.PopupTitle.Render(col), val)
	}
	m.modalKind = modalDetail
	m.modalTitle = "Row detail"
	m.modalBody = b.String()
	m.modalActive = true
	m.resizeModal()
	m.modalVP.GotoTop()
}

func (m *Model) openLogsModal() {
	body := logx.Dump()
	if body == "" {
		body = "(no log entries)"
	}
	m.modalKind = modalLogs
	m.modalTitle = "Application logs"
	m.modalBody = body
	m.modalActive = true
	m.resizeModal()
	m.modalVP.GotoBottom()
}

func (m *Model) resizeModal() {
	w := m.termWidth - 6
	h := m.termHeight - 6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.modalVP = viewport.New(w-4, h-4)
	switch m.modalKind {
	case modalHelp:
		m.modalVP.SetContent(m.renderHelpBody())
	case modalValues:
		m.renderValuesBody()
	default:
		m.modalVP.SetContent(m.modalBody)
	}
}

func (m *Model) renderModal() string {
	w := m.termWidth - 6
	h := m.termHeight - 6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}

	var hint string
	switch m.modalKind {
	case modalHelp:
		hint = "[up/down]=select  [enter]=run  [esc]=close"
	case modalValues:
		hint = "[up/down]=select  [enter]=apply  [esc]=close"
	default:
		hint = "[c]=copy  [esc]=close"
	}
	body := m.styles.PopupTitle.Render(m.modalTitle) + "\n\n" +
		m.modalVP.View() + "\n" + m.styles.Help.Render(hint)
	box := m.styles.PopupBox.Width(w).Render(body)
	tw, th := m.termWidth, m.termHeight
	if tw <= 0 {
		tw = 80
	}
	if th <= 0 {
		th = 24
	}
	return lipgloss.Place(tw, th, lipgloss.Center, lipgloss.Center, box)
}

// renderHelpBody renders the shortcut list with group headers and nudges
// the viewport offset so the selected entry stays on screen.
func (m *Model) renderHelpBody() string {
	var b strings.Builder
	group := ""
	line := 0
	selLine := 0
	for i, it := range m.helpItems {
		if it.group != group {
			if group != "" {
				b.WriteString("\n")
				line++
			}
			group = it.group
			b.WriteString(m.styles.PopupTitle.Render(it.group))
			b.WriteString("\n")
			line++
		}
		prefix := "  "
		if i == m.helpSel {
			prefix = "> "
			selLine = line
		}
		fmt.Fprintf(&b, "%s%-11s %s\n", prefix, keyLabel(it.key), it.text)
		line++
	}
	if selLine < m.modalVP.YOffset {
		m.modalVP.YOffset = selLine
	}
	if selLine >= m.modalVP.YOffset+m.modalVP.Height {
		m.modalVP.YOffset = selLine - m.modalVP.Height + 1
	}
	return b.String()
}

// renderValuesBody rebuilds the distinct-value list. The value applied
// as the current column filter is marked with a star.
func (m *Model) renderValuesBody() {
	applied := m.view.Filter.Columns[m.valueCol]
	var b strings.Builder
	for i, vc := range m.valueItems {
		prefix := "  "
		if i == m.valueSel {
			prefix = "> "
		}
		mark := " "
		if applied != "" && vc.Value == applied {
			mark = "*"
		}
		label := vc.Value
		if label == "" {
			label = "(blank)"
		}
		fmt.Fprintf(&b, "%s%s %s (%d)\n", prefix, mark, label, vc.Count)
	}
	m.modalVP.SetContent(b.String())
	if m.valueSel < m.modalVP.YOffset {
		m.modalVP.YOffset = m.valueSel
	}
	if m.valueSel >= m.modalVP.YOffset+m.modalVP.Height {
		m.modalVP.YOffset = m.valueSel - m.modalVP.Height + 1
	}
}
