package tui

import (
	"programctl/internal/program"
	"programctl/internal/store"
	"programctl/internal/tui/components"
	"programctl/pkg/logging"
)

// navigateMsg replaces the current screen.
type navigateMsg struct {
	route Route
}

// storeChangeMsg carries one store transition to the current screen.
type storeChangeMsg struct {
	change store.Change
}

// logEntryMsg is a log line from the TUI log channel.
type logEntryMsg struct {
	entry logging.LogEntry
}

// actionResultMsg reports that an action has resolved. The state change
// itself arrives as a storeChangeMsg.
type actionResultMsg struct {
	op  store.Op
	id  int64
	err error
}

type usersLoadedMsg struct {
	users []program.User
	err   error
}

type coverLoadedMsg struct {
	path        string
	data        []byte
	contentType string
	err         error
}

type coverSavedMsg struct {
	path string
	err  error
}

type statusMsg struct {
	text string
	kind components.MessageType
}

type clearStatusBarMsg struct{}
