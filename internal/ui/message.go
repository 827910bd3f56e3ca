package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/enroll/internal/models"
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
	MsgLoaded MsgKind = iota
	MsgSaved
)

type loadResult struct {
	students []*models.Student
	err      error
}

type saveResult struct {
	count int
	err   error
}

// loadedMsg is the constructor for [MsgLoaded]
func loadedMsg(students []*models.Student, err error) Msg {
	return Msg{kind: MsgLoaded, data: loadResult{students, err}}
}

// savedMsg is the constructor for [MsgSaved]
func savedMsg(count int, err error) Msg {
	return Msg{kind: MsgSaved, data: saveResult{count, err}}
}
