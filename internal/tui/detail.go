package tui

import (
	"fmt"
	"strconv"
	"strings"

	"programctl/internal/api"
	"programctl/internal/program"
	"programctl/internal/tui/components"
	"programctl/internal/tui/design"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// For mocking in tests
var writeClipboard = clipboard.WriteAll

// DetailModel shows one Program read-only.
type DetailModel struct {
	env   *env
	keys  DetailKeyMap
	id    int64
	query api.ListQuery
	width int
}

// NewDetailModel returns the detail screen of id. q is handed back to the
// list on Back.
func NewDetailModel(e *env, id int64, q api.ListQuery) *DetailModel {
	return &DetailModel{env: e, keys: DefaultDetailKeyMap(), id: id, query: q}
}

func (m *DetailModel) Init() tea.Cmd {
	return getEntityCmd(m.env, m.id)
}

func (m *DetailModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case coverSavedMsg:
		if msg.err != nil {
			return m, setStatus("Could not save cover: "+msg.err.Error(), components.StatusBarError)
		}
		return m, setStatus("Cover saved to "+msg.path, components.StatusBarSuccess)

	case tea.KeyMsg:
		entity := m.env.state().Entity
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ListRoute(m.query))
		case key.Matches(msg, m.keys.Edit):
			return m, navigate(EditRoute(m.id, m.query))
		case key.Matches(msg, m.keys.OpenCover):
			if !entity.HasCover() {
				return m, setStatus("This Program has no cover", components.StatusBarWarning)
			}
			return m, saveCoverCmd(entity)
		case key.Matches(msg, m.keys.CopyCoverURI):
			uri := entity.CoverDataURI()
			if uri == "" {
				return m, setStatus("This Program has no cover", components.StatusBarWarning)
			}
			if err := writeClipboard(uri); err != nil {
				return m, setStatus("Failed to copy to clipboard: "+err.Error(), components.StatusBarError)
			}
			return m, setStatus("Cover data URI copied to clipboard", components.StatusBarSuccess)
		}
	}
	return m, nil
}

func (m *DetailModel) KeyMap() help.KeyMap { return m.keys }

func (m *DetailModel) Capturing() bool { return false }

func (m *DetailModel) View() string {
	st := m.env.state()
	width := m.width
	if width == 0 {
		width = 80
	}

	if st.Err != nil && !st.Loading {
		return components.NewPanel(fmt.Sprintf("Program %d", m.id)).
			WithType(components.PanelTypeError).
			WithContent(design.TextErrorStyle.Render(st.Err.Error())).
			WithDimensions(width, 0).
			Render()
	}
	if st.Loading {
		return design.DimStyle.Render(fmt.Sprintf("Loading Program %d…", m.id))
	}

	return components.NewPanel(fmt.Sprintf("Program %d", m.id)).
		WithContent(detailRows(st.Entity)).
		WithDimensions(width, 0).
		Render()
}

func detailRows(p program.Program) string {
	rows := [][2]string{
		{"ID", strconv.FormatInt(p.ID, 10)},
		{"Cover", coverSummary(p)},
		{"Title", p.Title},
		{"Description", p.Description},
		{"Start Date", p.StartDate},
		{"End Date", p.EndDate},
		{"Tags", p.Tags},
		{"User", p.OwnerLogin()},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, design.LabelStyle.Render(r[0])+design.TextStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

// coverSummary is the textual cover preview: content type and size.
func coverSummary(p program.Program) string {
	if !p.HasCover() {
		return ""
	}
	if p.CoverContentType == "" {
		return p.CoverSize()
	}
	return p.CoverContentType + ", " + p.CoverSize()
}
