package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"minibook-cli/internal/watch"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditContent
	modalEditTitle
	modalEditDocTitle
	modalEditDocSubtitle
	modalAddChild
	modalPickTemplate
	modalConfirmTemplate
	modalConfirmRemove
	modalConfirmQuit
)

func (k modalKind) isInput() bool {
	switch k {
	case modalEditTitle, modalEditDocTitle, modalEditDocSubtitle, modalAddChild:
		return true
	default:
		return false
	}
}

func (k modalKind) isConfirm() bool {
	switch k {
	case modalConfirmTemplate, modalConfirmRemove, modalConfirmQuit:
		return true
	default:
		return false
	}
}

// fileChangedMsg is sent by the file watcher when the open document changes on disk.
type fileChangedMsg struct {
	op watch.Op
}

type minibufferClearMsg struct{ seq int }

const minibufferTTL = 4 * time.Second

func (m *appModel) showMinibuffer(s string) tea.Cmd {
	m.minibuffer = s
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(minibufferTTL, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.pendingKind = ""
	m.confirmFocus = confirmFocusConfirm

	m.input.SetValue("")
	m.input.Blur()
	m.textarea.SetValue("")
	m.textarea.Blur()
}
