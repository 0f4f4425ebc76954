package tui

import (
	"errors"
	"fmt"
	"strings"

	"programctl/internal/api"
	"programctl/internal/program"
	"programctl/internal/store"
	"programctl/internal/tui/components"
	"programctl/internal/tui/design"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus positions of the form, in tab order.
const (
	fieldTitle = iota
	fieldDescription
	fieldStartDate
	fieldEndDate
	fieldTags
	fieldCover
	fieldUser
	fieldCount
)

type formField struct {
	label       string
	key         string // json name, matches program.FieldErrors keys
	placeholder string
}

var formFields = [fieldCount]formField{
	fieldTitle:       {"Title", "title", "5 to 30 characters"},
	fieldDescription: {"Description", "description", "up to 300 characters"},
	fieldStartDate:   {"Start Date", "startDate", "YYYY-MM-DD"},
	fieldEndDate:     {"End Date", "endDate", "YYYY-MM-DD"},
	fieldTags:        {"Tags", "tags", "optional, 3 to 30 characters"},
	fieldCover:       {"Cover", "cover", "path to an image, enter to load"},
	fieldUser:        {"User", "user", ""},
}

// FormModel creates a Program, or edits one when constructed with an id.
type FormModel struct {
	env   *env
	keys  FormKeyMap
	id    int64
	query api.ListQuery

	inputs [fieldUser]textinput.Model
	focus  int

	users []program.User
	// userID is the selected owner, 0 for none.
	userID int64

	errs      program.FieldErrors
	submitted bool
	width     int
}

// NewFormModel returns the create form when id is 0, the edit form of id
// otherwise. q is handed back to the list after saving.
func NewFormModel(e *env, id int64, q api.ListQuery) *FormModel {
	m := &FormModel{env: e, keys: DefaultFormKeyMap(), id: id, query: q}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = formFields[i].placeholder
		ti.CharLimit = 300
		m.inputs[i] = ti
	}
	return m
}

// IsNew reports whether the form creates a Program.
func (m *FormModel) IsNew() bool {
	return m.id == 0
}

func (m *FormModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.setFocus(fieldTitle), loadUsersCmd(m.env)}
	if m.IsNew() {
		cmds = append(cmds, resetCmd(m.env))
	} else {
		cmds = append(cmds, getEntityCmd(m.env, m.id))
	}
	return tea.Batch(cmds...)
}

func (m *FormModel) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case storeChangeMsg:
		return m, m.handleChange(msg.change)

	case usersLoadedMsg:
		if msg.err != nil {
			return m, setStatus("Could not load users: "+msg.err.Error(), components.StatusBarError)
		}
		m.users = msg.users
		return m, nil

	case coverLoadedMsg:
		if msg.err != nil {
			m.setFieldError(fieldCover, msg.err.Error())
			return m, nil
		}
		m.env.actions.SetBlob(program.CoverField, msg.data, msg.contentType)
		m.inputs[fieldCover].SetValue("")
		m.clearFieldError(fieldCover)
		return m, setStatus("Loaded "+msg.path, components.StatusBarInfo)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.updateFocusedInput(msg)
}

func (m *FormModel) handleChange(c store.Change) tea.Cmd {
	ev, ok := c.Event.(store.Lifecycle)
	if !ok || ev.Phase != store.PhaseSucceeded {
		return nil
	}
	switch {
	case ev.Op == store.OpFetch && !m.IsNew() && !m.submitted:
		m.populate(c.New.Entity)
	case ev.Op.IsWrite() && m.submitted && c.New.UpdateSuccess:
		return navigate(ListRoute(m.query))
	}
	return nil
}

func (m *FormModel) populate(p program.Program) {
	m.inputs[fieldTitle].SetValue(p.Title)
	m.inputs[fieldDescription].SetValue(p.Description)
	m.inputs[fieldStartDate].SetValue(p.StartDate)
	m.inputs[fieldEndDate].SetValue(p.EndDate)
	m.inputs[fieldTags].SetValue(p.Tags)
	m.userID = 0
	if p.User != nil {
		m.userID = p.User.ID
	}
}

func (m *FormModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Cancel):
		return navigate(ListRoute(m.query))
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, m.keys.ClearCover):
		m.env.actions.SetBlob(program.CoverField, nil, "")
		return nil
	}

	switch m.focus {
	case fieldCover:
		if key.Matches(msg, m.keys.LoadCover) {
			path := m.inputs[fieldCover].Value()
			if strings.TrimSpace(path) == "" {
				return nil
			}
			return readCoverCmd(path)
		}
	case fieldUser:
		switch {
		case key.Matches(msg, m.keys.PrevUser):
			m.cycleUser(-1)
		case key.Matches(msg, m.keys.NextUser):
			m.cycleUser(1)
		}
		return nil
	}

	return m.updateFocusedInput(msg)
}

func (m *FormModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if m.focus >= len(m.inputs) {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// cycleUser moves the owner selection through "none" and the loaded users.
func (m *FormModel) cycleUser(step int) {
	n := len(m.users) + 1
	pos := 0
	for i, u := range m.users {
		if u.ID == m.userID {
			pos = i + 1
		}
	}
	pos = ((pos+step)%n + n) % n
	if pos == 0 {
		m.userID = 0
		return
	}
	m.userID = m.users[pos-1].ID
}

// selectedUser resolves the owner from the loaded user list. An id that is
// not in the list is kept as a bare reference.
func (m *FormModel) selectedUser() *program.User {
	if m.userID == 0 {
		return nil
	}
	for _, u := range m.users {
		if u.ID == m.userID {
			return &u
		}
	}
	return &program.User{ID: m.userID}
}

// Entity merges the staged entity with the input values. Values are taken
// as typed; the length rules apply to them unchanged.
func (m *FormModel) Entity() program.Program {
	p := m.env.state().Entity
	if !m.IsNew() {
		p.ID = m.id
	} else {
		p.ID = 0
	}
	p.Title = m.inputs[fieldTitle].Value()
	p.Description = m.inputs[fieldDescription].Value()
	p.StartDate = m.inputs[fieldStartDate].Value()
	p.EndDate = m.inputs[fieldEndDate].Value()
	p.Tags = m.inputs[fieldTags].Value()
	p.User = m.selectedUser()
	return p
}

func (m *FormModel) submit() tea.Cmd {
	if m.env.state().Updating {
		return setStatus("A save is already in progress", components.StatusBarWarning)
	}

	p := m.Entity()
	if err := program.Validate(p); err != nil {
		var fieldErrs program.FieldErrors
		if errors.As(err, &fieldErrs) {
			m.errs = fieldErrs
			return setStatus("Please fix the highlighted fields", components.StatusBarWarning)
		}
		return setStatus(err.Error(), components.StatusBarError)
	}

	m.errs = nil
	m.submitted = true
	return saveEntityCmd(m.env, p)
}

func (m *FormModel) setFieldError(field int, msg string) {
	if m.errs == nil {
		m.errs = program.FieldErrors{}
	}
	m.errs[formFields[field].key] = msg
}

func (m *FormModel) clearFieldError(field int) {
	delete(m.errs, formFields[field].key)
}

func (m *FormModel) KeyMap() help.KeyMap { return m.keys }

// Capturing is true while a text input has focus.
func (m *FormModel) Capturing() bool {
	return m.focus < len(m.inputs)
}

func (m *FormModel) View() string {
	st := m.env.state()
	var b strings.Builder

	title := "Create a Program"
	if !m.IsNew() {
		title = fmt.Sprintf("Edit Program %d", m.id)
	}
	b.WriteString(design.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if !m.IsNew() && st.Loading {
		b.WriteString(design.DimStyle.Render("Loading…"))
		b.WriteString("\n\n")
	}

	for i := 0; i < fieldCount; i++ {
		b.WriteString(m.renderField(i, st.Entity))
		b.WriteString("\n")
		if msg, ok := m.errs[formFields[i].key]; ok {
			b.WriteString(design.FieldErrorStyle.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	button := design.ButtonStyle
	label := "Save"
	if st.Updating {
		button = design.ButtonDisabledStyle
		label = "Saving…"
	}
	b.WriteString(button.Render(label))

	if st.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(design.TextErrorStyle.Render(backendError(st.Err)))
	}

	return b.String()
}

func (m *FormModel) renderField(i int, entity program.Program) string {
	label := design.LabelStyle.Render(formFields[i].label)
	if m.focus == i {
		label = design.LabelStyle.Foreground(design.ColorPrimary).Render(formFields[i].label)
	}

	switch i {
	case fieldCover:
		preview := design.DimStyle.Render("none")
		if entity.HasCover() {
			preview = design.TextStyle.Render(coverSummary(entity))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, label, preview, "  ", m.inputs[i].View())
	case fieldUser:
		login := "none"
		if u := m.selectedUser(); u != nil {
			login = u.Login
			if login == "" {
				login = fmt.Sprintf("#%d", u.ID)
			}
		}
		value := "‹ " + login + " ›"
		if m.focus == i {
			value = design.ListItemSelectedStyle.UnsetPaddingLeft().Render(value)
		}
		return label + value
	default:
		return label + m.inputs[i].View()
	}
}

// backendError renders a failed write, listing field errors the backend
// reported.
func backendError(err error) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || len(apiErr.FieldErrors) == 0 {
		return err.Error()
	}
	lines := []string{err.Error()}
	for _, fe := range apiErr.FieldErrors {
		lines = append(lines, fmt.Sprintf("  %s: %s", fe.Field, fe.Message))
	}
	return strings.Join(lines, "\n")
}
