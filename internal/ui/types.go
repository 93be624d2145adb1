package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"reportview/internal/config"
	"reportview/internal/engine"
	"reportview/internal/model"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalValues
	modalDetail
	modalLogs
)

type inlineMode int

const (
	inlineNone inlineMode = iota
	inlineSearch
	inlineExpr
	inlineGoto
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeError
)

type Model struct {
	ctx  context.Context
	cfg  *config.Config
	view *engine.View

	// UI
	tbl        table.Model
	styles     Styles
	input      textinput.Model
	spin       spinner.Model
	keymap     KeyMap
	selColIdx  int // index into the full column list
	colOffset  int
	maxCols    int
	termWidth  int
	termHeight int

	// Search debounce: every keystroke bumps the sequence and arms a new
	// quiet-period tick; only the newest tick recomputes the filter.
	searchSeq int

	// Notification slot
	notice     string
	noticeKind noticeKind
	noticeSeq  int

	// Export state; while exporting, further export requests are ignored
	exporting  bool
	exportKind string

	// Modal popup
	modalActive bool
	modalKind   modalKind
	modalVP     viewport.Model
	modalTitle  string
	modalBody   string

	// Value-picker modal state
	valueCol   string
	valueItems []model.ValueCount
	valueSel   int

	// Help menu state
	helpItems []helpItem
	helpSel   int

	// Inline input mode (bottom line)
	inlineMode inlineMode
}

type helpItem struct {
	group string
	text  string
	key   tea.Key
}

// searchTickMsg fires after the search quiet period; stale sequences are
// dropped.
type searchTickMsg struct{ seq int }

// noticeExpireMsg auto-dismisses the notification slot unless a newer
// notification superseded it.
type noticeExpireMsg struct{ seq int }

// exportDoneMsg always arrives once per started export, success or not,
// and clears the busy flag.
type exportDoneMsg struct {
	kind     string
	path     string
	tier     string
	rows     int
	degraded bool
	err      error
}

func keyCmd(k tea.Key) tea.Cmd {
	return func() tea.Msg {
		if k.Type == tea.KeyRunes {
			return tea.KeyMsg{Type: k.Type, Runes: k.Runes}
		}
		return tea.KeyMsg{Type: k.Type}
	}
}

func keyLabel(k tea.Key) string {
	switch k.Type {
	case tea.KeyRunes:
		if len(k.Runes) == 1 {
			r := k.Runes[0]
			if r == ' ' {
				return "space"
			}
			return string(r)
		}
		return strings.ToLower(string(k.Runes))
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeyTab:
		return "tab"
	case tea.KeyLeft:
		return "left"
	case tea.KeyRight:
		return "right"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyPgUp:
		return "pgup"
	case tea.KeyPgDown:
		return "pgdown"
	default:
		return strings.ToLower(k.String())
	}
}
