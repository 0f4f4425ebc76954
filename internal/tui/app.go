package tui

import (
	"context"
	"strings"
	"time"

	"programctl/internal/api"
	"programctl/internal/store"
	"programctl/internal/tui/components"
	"programctl/internal/tui/design"
	"programctl/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statusClearAfter = 4 * time.Second

// closeTimeout bounds how long Close waits for background list refreshes.
var closeTimeout = 5 * time.Second

// screen is one routed view.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	KeyMap() help.KeyMap
	// Capturing reports whether printable keys belong to a text input.
	Capturing() bool
}

// Options configure an App.
type Options struct {
	Start    Route
	PageSize int
	Sort     string
	Logs     <-chan logging.LogEntry
}

// App routes between the list, detail and form screens and re-renders
// whenever the store changes.
type App struct {
	env    *env
	sub    *store.Subscription
	logs   <-chan logging.LogEntry
	route  Route
	screen screen
	keys   GlobalKeyMap
	help   help.Model

	width  int
	height int

	statusText        string
	statusType        components.MessageType
	statusClearCancel chan struct{}
}

// NewApp builds the app around actions. users may be nil, in which case
// the form offers no owners.
func NewApp(ctx context.Context, actions *store.Actions, users UserDirectory, opts Options) *App {
	e := &env{
		ctx:      ctx,
		actions:  actions,
		users:    users,
		pageSize: opts.PageSize,
		sort:     opts.Sort,
	}
	start := opts.Start
	if start.Query == (api.ListQuery{}) {
		start.Query = e.defaultQuery()
	}

	a := &App{
		env:  e,
		logs: opts.Logs,
		keys: DefaultGlobalKeyMap(),
		help: help.New(),
	}
	a.route = start
	a.screen = a.newScreen(start)
	return a
}

func (e *env) defaultQuery() api.ListQuery {
	return api.ListQuery{Size: e.pageSize, Sort: e.sort}
}

// Route returns the current route.
func (a *App) Route() Route {
	return a.route
}

func (a *App) newScreen(r Route) screen {
	switch r.Kind {
	case RouteView:
		return NewDetailModel(a.env, r.ID, r.Query)
	case RouteEdit:
		return NewFormModel(a.env, r.ID, r.Query)
	case RouteNew:
		return NewFormModel(a.env, 0, r.Query)
	default:
		return NewListModel(a.env, r.Query)
	}
}

// Init subscribes to the store and starts the first screen.
func (a *App) Init() tea.Cmd {
	a.sub = a.env.actions.Store().Subscribe()
	return tea.Batch(
		a.screen.Init(),
		waitForChange(a.sub),
		waitForLog(a.logs),
	)
}

// Close unsubscribes from the store and waits, up to closeTimeout, for
// background refreshes.
func (a *App) Close() {
	if a.sub != nil {
		a.env.actions.Store().Unsubscribe(a.sub)
	}
	ctx, cancel := context.WithTimeout(a.env.ctx, closeTimeout)
	defer cancel()
	if err := a.env.actions.WaitContext(ctx); err != nil {
		logging.Warn("TUI", "not waiting any longer for list refreshes: %v", err)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.ForceQuit):
			return a, tea.Quit
		case a.screen.Capturing():
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		}

	case navigateMsg:
		logging.Debug("TUI", "navigating to %s", msg.route)
		a.route = msg.route
		a.screen = a.newScreen(msg.route)
		if a.width > 0 {
			a.screen, _ = a.screen.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		return a, a.screen.Init()

	case storeChangeMsg:
		var cmd tea.Cmd
		a.screen, cmd = a.screen.Update(msg)
		return a, tea.Batch(cmd, waitForChange(a.sub))

	case logEntryMsg:
		var cmd tea.Cmd
		if msg.entry.Level >= logging.LevelWarn {
			kind := components.StatusBarWarning
			if msg.entry.Level >= logging.LevelError {
				kind = components.StatusBarError
			}
			cmd = a.setStatus(msg.entry.Subsystem+": "+msg.entry.Message, kind)
		}
		return a, tea.Batch(cmd, waitForLog(a.logs))

	case statusMsg:
		return a, a.setStatus(msg.text, msg.kind)

	case clearStatusBarMsg:
		a.statusText = ""
		return a, nil

	case actionResultMsg:
		var cmd tea.Cmd
		a.screen, cmd = a.screen.Update(msg)
		if msg.err != nil {
			return a, tea.Batch(cmd, a.setStatus(msg.op.String()+" failed: "+msg.err.Error(), components.StatusBarError))
		}
		return a, cmd
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.Update(msg)
	return a, cmd
}

// setStatus shows text until statusClearAfter has passed or another
// message replaces it.
func (a *App) setStatus(text string, kind components.MessageType) tea.Cmd {
	a.statusText = text
	a.statusType = kind

	if a.statusClearCancel != nil {
		close(a.statusClearCancel)
	}
	a.statusClearCancel = make(chan struct{})
	return clearStatusAfter(statusClearAfter, a.statusClearCancel)
}

func (a *App) View() string {
	width := a.width
	if width == 0 {
		width = 80
	}

	bar := components.NewStatusBar(width).
		WithLeftText("programctl · " + a.route.String()).
		WithRightText(a.statusRight())
	if a.statusText != "" {
		bar.WithMessage(a.statusText, a.statusType)
	}

	body := lipgloss.NewStyle().Padding(design.SpaceXS, design.SpaceXS).Render(a.screen.View())
	footer := lipgloss.NewStyle().PaddingLeft(design.SpaceXS).Render(a.help.View(a.screen.KeyMap()))

	parts := []string{body, footer, bar.Render()}
	if a.height > 0 {
		// Pin the status bar to the bottom line.
		used := lipgloss.Height(body) + lipgloss.Height(footer) + 1
		if gap := a.height - used; gap > 0 {
			parts = []string{body, footer + strings.Repeat("\n", gap), bar.Render()}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) statusRight() string {
	st := a.env.state()
	switch {
	case st.Updating:
		return "saving…"
	case st.Loading:
		return "loading…"
	default:
		return "? help · q quit"
	}
}
