package tui

import (
	"pdfmerge-cli/internal/pdf"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmClear
	modalPickFile
	modalHelp
	modalHistory
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// statusClearMsg hides a success status; stale seqs are ignored.
type statusClearMsg struct{ seq int }

// mergeStepMsg reports that input i validated (or failed to).
type mergeStepMsg struct {
	run  int
	step int
	err  error
}

type mergeDoneMsg struct {
	run     int
	res     pdf.Result
	err     error
	histErr error
}

type historyLoadedMsg struct {
	lines []string
	err   error
}
