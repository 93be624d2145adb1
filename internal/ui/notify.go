package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeTTL is how long a notification stays in the status line before it
// auto-dismisses.
const noticeTTL = 4 * time.Second

// notify fills the single notification slot and arms its expiry. A newer
// notification bumps the sequence, so the older expiry tick is ignored
// when it lands.
func (m *Model) notify(kind noticeKind, text string) tea.Cmd {
	m.notice = text
	m.noticeKind = kind
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpireMsg{seq: seq} })
}

func (m *Model) notifyInfo(text string) tea.Cmd    { return m.notify(noticeInfo, text) }
func (m *Model) notifySuccess(text string) tea.Cmd { return m.notify(noticeSuccess, text) }
func (m *Model) notifyError(text string) tea.Cmd   { return m.notify(noticeError, text) }

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return m.styles.Notice[m.noticeKind].Render(m.notice)
}
