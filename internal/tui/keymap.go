package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap holds the bindings every screen honours.
type GlobalKeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
}

// ListKeyMap defines the keybindings of the list screen.
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	View     key.Binding
	Edit     key.Binding
	New      key.Binding
	Delete   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Reload   key.Binding
}

// DetailKeyMap defines the keybindings of the detail screen.
type DetailKeyMap struct {
	Back         key.Binding
	Edit         key.Binding
	OpenCover    key.Binding
	CopyCoverURI key.Binding
}

// FormKeyMap defines the keybindings of the create/edit form.
type FormKeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	LoadCover  key.Binding
	ClearCover key.Binding
	PrevUser   key.Binding
	NextUser   key.Binding
}

// DefaultGlobalKeyMap returns the bindings shared by all screens. q only
// quits outside text input; ctrl+c always does.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// DefaultListKeyMap returns the list bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		View: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new program"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// DefaultDetailKeyMap returns the detail bindings.
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		OpenCover: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "save cover to file"),
		),
		CopyCoverURI: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy cover data URI"),
		),
	}
}

// DefaultFormKeyMap returns the form bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		LoadCover: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load cover file"),
		),
		ClearCover: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear cover"),
		),
		PrevUser: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous user"),
		),
		NextUser: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next user"),
		),
	}
}

// ShortHelp returns a minimal set of bindings for the footer.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.View, k.Edit, k.New, k.Delete}
}

// FullHelp returns bindings for the expanded help view.
// Each inner slice is a column.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.View, k.Edit, k.New, k.Delete, k.Reload},
	}
}

func (k DetailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Edit}
}

func (k DetailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Edit},
		{k.OpenCover, k.CopyCoverURI},
	}
}

func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Cancel}
}

func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Cancel},
		{k.LoadCover, k.ClearCover, k.PrevUser, k.NextUser},
	}
}
