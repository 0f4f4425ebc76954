package tui

import (
	"fmt"
	"strconv"
	"strings"

	"programctl/internal/api"
	"programctl/internal/store"
	"programctl/internal/tui/components"
	"programctl/internal/tui/design"
	"programctl/internal/tui/utils"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type column struct {
	title string
	width int
}

var listColumns = []column{
	{"ID", 6},
	{"Title", 30},
	{"Start", 10},
	{"End", 10},
	{"Tags", 16},
	{"Owner", 12},
}

// ListModel shows one page of Programs and is where Back leads.
type ListModel struct {
	env    *env
	keys   ListKeyMap
	query  api.ListQuery
	cursor int
	width  int

	// pendingDelete is the id awaiting confirmation, 0 when none.
	pendingDelete int64
}

// NewListModel returns the list screen for q.
func NewListModel(e *env, q api.ListQuery) *ListModel {
	return &ListModel{env: e, keys: DefaultListKeyMap(), query: q}
}

func (m *ListModel) Init() tea.Cmd {
	return getEntitiesCmd(m.env, m.query)
}

func (m *ListModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case storeChangeMsg:
		m.clampCursor(len(msg.change.New.Entities))

	case actionResultMsg:
		if msg.op == store.OpDelete && msg.err == nil {
			// The refresh after a delete is unpaged; restore our page.
			return m, tea.Batch(
				setStatus(fmt.Sprintf("Program %d deleted", msg.id), components.StatusBarSuccess),
				getEntitiesCmd(m.env, m.query),
			)
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *ListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := m.env.state()

	if m.pendingDelete != 0 {
		id := m.pendingDelete
		m.pendingDelete = 0
		if msg.String() == "y" {
			return deleteEntityCmd(m.env, id)
		}
		return setStatus("Delete cancelled", components.StatusBarInfo)
	}

	selected, ok := m.selected(st)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(st.Entities)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.View):
		if ok {
			return navigate(ViewRoute(selected, m.query))
		}
	case key.Matches(msg, m.keys.Edit):
		if ok {
			return navigate(EditRoute(selected, m.query))
		}
	case key.Matches(msg, m.keys.New):
		return navigate(NewRoute(m.query))
	case key.Matches(msg, m.keys.Delete):
		if ok {
			if st.Updating {
				return setStatus("Another change is still being saved", components.StatusBarWarning)
			}
			m.pendingDelete = selected
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.paged() && m.query.Page > 0 {
			m.query.Page--
			m.cursor = 0
			return getEntitiesCmd(m.env, m.query)
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.paged() && m.query.Page+1 < m.pageCount(st.TotalItems) {
			m.query.Page++
			m.cursor = 0
			return getEntitiesCmd(m.env, m.query)
		}
	case key.Matches(msg, m.keys.Reload):
		return getEntitiesCmd(m.env, m.query)
	}
	return nil
}

// paged reports whether the backend honours page and size: they are only
// sent together with a sort order.
func (m *ListModel) paged() bool {
	return m.query.Sort != "" && m.query.Size > 0
}

func (m *ListModel) pageCount(total int) int {
	if !m.paged() || total <= 0 {
		return 1
	}
	return (total + m.query.Size - 1) / m.query.Size
}

func (m *ListModel) selected(st store.State) (int64, bool) {
	if m.cursor < 0 || m.cursor >= len(st.Entities) {
		return 0, false
	}
	return st.Entities[m.cursor].ID, true
}

func (m *ListModel) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ListModel) KeyMap() help.KeyMap { return m.keys }

func (m *ListModel) Capturing() bool { return false }

func (m *ListModel) View() string {
	st := m.env.state()
	var b strings.Builder

	b.WriteString(design.TitleStyle.Render("Programs"))
	b.WriteString("\n\n")

	header := make([]string, len(listColumns))
	for i, c := range listColumns {
		header[i] = utils.PadRight(c.title, c.width)
	}
	b.WriteString(design.ListHeaderStyle.Render(" " + strings.Join(header, " ")))
	b.WriteString("\n")

	switch {
	case st.Loading && len(st.Entities) == 0:
		b.WriteString(design.DimStyle.Render(" Loading…"))
		b.WriteString("\n")
	case len(st.Entities) == 0:
		b.WriteString(design.DimStyle.Render(" No Programs found"))
		b.WriteString("\n")
	}

	for i, p := range st.Entities {
		cells := []string{
			strconv.FormatInt(p.ID, 10),
			utils.SingleLine(p.Title),
			p.StartDate,
			p.EndDate,
			p.Tags,
			p.OwnerLogin(),
		}
		for j, c := range listColumns {
			cells[j] = utils.PadRight(cells[j], c.width)
		}
		line := strings.Join(cells, " ")
		if m.width > 0 {
			line = utils.TruncateString(line, m.width-design.SpaceXS)
		}
		if i == m.cursor {
			b.WriteString(design.ListItemSelectedStyle.Render(line))
		} else {
			b.WriteString(design.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(design.TextSecondaryStyle.Render(
		fmt.Sprintf("page %d of %d, %d total", m.query.Page+1, m.pageCount(st.TotalItems), st.TotalItems)))

	if m.pendingDelete != 0 {
		b.WriteString("\n")
		b.WriteString(design.TextErrorStyle.Render(
			fmt.Sprintf("Delete Program %d? Press y to confirm, any other key to cancel.", m.pendingDelete)))
	}
	if st.Err != nil {
		b.WriteString("\n")
		b.WriteString(design.TextErrorStyle.Render(st.Err.Error()))
	}

	return b.String()
}
