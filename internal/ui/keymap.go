package ui

import tea "github.com/charmbracelet/bubbletea"

type KeyMap struct {
	Search      tea.Key
	ValueFilter tea.Key
	ExprFilter  tea.Key
	ClearFilter tea.Key
	Sort        tea.Key
	PrevPage    tea.Key
	NextPage    tea.Key
	FirstPage   tea.Key
	LastPage    tea.Key
	GotoPage    tea.Key
	PageSize    tea.Key
	ExportCSV   tea.Key
	ExportPDF   tea.Key
	Print       tea.Key
	CopyRow     tea.Key
	Detail      tea.Key
	AppLogs     tea.Key
	Top         tea.Key
	Bottom      tea.Key
	Help        tea.Key
	Quit        tea.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'/'}},
		ValueFilter: tea.Key{Type: tea.KeyRunes, Runes: []rune{'f'}},
		ExprFilter:  tea.Key{Type: tea.KeyRunes, Runes: []rune{'x'}},
		ClearFilter: tea.Key{Type: tea.KeyRunes, Runes: []rune{'F'}},
		Sort:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'s'}},
		PrevPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{','}},
		NextPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'.'}},
		FirstPage:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'<'}},
		LastPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'>'}},
		GotoPage:    tea.Key{Type: tea.KeyRunes, Runes: []rune{':'}},
		PageSize:    tea.Key{Type: tea.KeyRunes, Runes: []rune{'z'}},
		ExportCSV:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'e'}},
		ExportPDF:   tea.Key{Type: tea.KeyRunes, Runes: []rune{'p'}},
		Print:       tea.Key{Type: tea.KeyRunes, Runes: []rune{'P'}},
		CopyRow:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'c'}},
		Detail:      tea.Key{Type: tea.KeyEnter},
		AppLogs:     tea.Key{Type: tea.KeyRunes, Runes: []rune{'L'}},
		Top:         tea.Key{Type: tea.KeyRunes, Runes: []rune{'g'}},
		Bottom:      tea.Key{Type: tea.KeyRunes, Runes: []rune{'G'}},
		Help:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'?'}},
		Quit:        tea.Key{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}
}

func keyMatches(msg tea.KeyMsg, k tea.Key) bool {
	if k.Type != tea.KeyRunes {
		return msg.Type == k.Type
	}
	if len(k.Runes) > 0 {
		return msg.String() == string(k.Runes)
	}
	return false
}
