package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"programctl/internal/api"
	"programctl/internal/program"
	"programctl/internal/store"
	"programctl/internal/tui/components"
	"programctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// UserDirectory lists the users a Program can be assigned to.
type UserDirectory interface {
	GetUsers(ctx context.Context) ([]program.User, error)
}

// env is what every screen shares.
type env struct {
	ctx      context.Context
	actions  *store.Actions
	users    UserDirectory
	pageSize int
	sort     string
}

func (e *env) state() store.State {
	return e.actions.Store().State()
}

// waitForChange returns a tea.Cmd that waits for the next store transition.
// It returns nil once the subscription is closed.
func waitForChange(sub *store.Subscription) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-sub.Channel
		if !ok {
			return nil
		}
		return storeChangeMsg{change: change}
	}
}

// waitForLog returns a tea.Cmd that waits for the next log entry.
func waitForLog(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return logEntryMsg{entry: entry}
	}
}

func navigate(r Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

func setStatus(text string, kind components.MessageType) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, kind: kind} }
}

func getEntitiesCmd(e *env, q api.ListQuery) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{op: store.OpFetchList, err: e.actions.GetEntities(e.ctx, q)}
	}
}

func getEntityCmd(e *env, id int64) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{op: store.OpFetch, id: id, err: e.actions.GetEntity(e.ctx, id)}
	}
}

func saveEntityCmd(e *env, p program.Program) tea.Cmd {
	return func() tea.Msg {
		if p.IsNew() {
			saved, err := e.actions.CreateEntity(e.ctx, p)
			return actionResultMsg{op: store.OpCreate, id: saved.ID, err: err}
		}
		saved, err := e.actions.UpdateEntity(e.ctx, p)
		return actionResultMsg{op: store.OpUpdate, id: saved.ID, err: err}
	}
}

// deleteEntityCmd resolves only after the list refresh the delete started,
// so a reload issued on its result lands last. It stops waiting when the
// app context ends.
func deleteEntityCmd(e *env, id int64) tea.Cmd {
	return func() tea.Msg {
		err := e.actions.DeleteEntity(e.ctx, id)
		_ = e.actions.WaitContext(e.ctx)
		return actionResultMsg{op: store.OpDelete, id: id, err: err}
	}
}

func resetCmd(e *env) tea.Cmd {
	return func() tea.Msg {
		e.actions.Reset()
		return nil
	}
}

func loadUsersCmd(e *env) tea.Cmd {
	if e.users == nil {
		return nil
	}
	return func() tea.Msg {
		users, err := e.users.GetUsers(e.ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

// readCoverCmd reads a cover image from disk and detects its content type.
func readCoverCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, contentType, err := program.ReadCover(path)
		return coverLoadedMsg{path: strings.TrimSpace(path), data: data, contentType: contentType, err: err}
	}
}

// saveCoverCmd writes the decoded cover of p to a temp file.
func saveCoverCmd(p program.Program) tea.Cmd {
	return func() tea.Msg {
		f, err := os.CreateTemp("", fmt.Sprintf("program-%d-cover-*%s", p.ID, program.CoverExtension(p.CoverContentType)))
		if err != nil {
			return coverSavedMsg{err: err}
		}
		defer f.Close()
		if _, err := f.Write(p.Cover); err != nil {
			return coverSavedMsg{path: f.Name(), err: err}
		}
		return coverSavedMsg{path: f.Name()}
	}
}

// clearStatusAfter returns a tea.Cmd that clears the status bar after d
// unless cancel is closed first.
func clearStatusAfter(d time.Duration, cancel <-chan struct{}) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		select {
		case <-cancel:
			return nil
		default:
			return clearStatusBarMsg{}
		}
	})
}
