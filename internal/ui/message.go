package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mlc/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgReconcileComplete
	MsgExportComplete
)

type reconcileOutcome struct {
	result *tasks.ReconcileResult
	err    error
}

type exportOutcome struct {
	result *tasks.ExportResult
	err    error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// reconcileCompleteMsg is the constructor for [MsgReconcileComplete]
func reconcileCompleteMsg(result *tasks.ReconcileResult, err error) Msg {
	return Msg{kind: MsgReconcileComplete, data: reconcileOutcome{result, err}}
}

// exportCompleteMsg is the constructor for [MsgExportComplete]
func exportCompleteMsg(result *tasks.ExportResult, err error) Msg {
	return Msg{kind: MsgExportComplete, data: exportOutcome{result, err}}
}
