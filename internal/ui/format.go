package ui

import (
	"github.com/mattn/go-runewidth"
)

const (
	sortAscGlyph  = "▲"
	sortDescGlyph = "▼"
	sortNoneGlyph = "↕"
)

// headerTitle composes a column header: sort glyph on every column (the
// active sort column carries ▲ or ▼, every other one ↕) and guillemets
// around the selected column.
func (m *Model) headerTitle(name string, abs int) string {
	glyph := sortNoneGlyph
	if m.view.Sort.Active() && m.view.Sort.Column == name {
		glyph = sortAscGlyph
		if m.view.Sort.Desc {
			glyph = sortDescGlyph
		}
	}
	base := name + " " + glyph
	if abs == m.selColIdx {
		return "«" + base + "»"
	}
	return " " + base + " "
}

// headerMinWidth returns the width needed to fully render a header,
// selection markers included.
func headerMinWidth(name string, selected bool) int {
	w := runewidth.StringWidth(" " + name + " " + sortNoneGlyph + " ")
	if selected {
		if sw := runewidth.StringWidth("«" + name + " " + sortNoneGlyph + "»"); sw > w {
			w = sw
		}
	}
	if w < 6 {
		w = 6
	}
	return w
}

// truncateCell fits a cell into a column, marking the cut with an
// ellipsis.
func truncateCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}
