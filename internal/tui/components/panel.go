package components

import (
	"strings"

	"programctl/internal/tui/design"
	"programctl/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PanelType defines the visual style of a panel
type PanelType int

const (
	PanelTypeDefault PanelType = iota
	PanelTypeError
)

// Panel is a bordered box with an optional title line.
type Panel struct {
	Title   string
	Content string
	Width   int
	// Height of zero sizes the panel to its content.
	Height  int
	Focused bool
	Type    PanelType
}

// NewPanel creates a new panel with default settings
func NewPanel(title string) *Panel {
	return &Panel{
		Title: title,
		Width: design.MinPanelWidth,
		Type:  PanelTypeDefault,
	}
}

// WithContent sets the panel content
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithDimensions sets the panel dimensions
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// WithType sets the panel type for styling
func (p *Panel) WithType(panelType PanelType) *Panel {
	p.Type = panelType
	return p
}

// SetFocused updates the focus state
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// Render returns the styled panel
func (p *Panel) Render() string {
	if p.Width < design.MinPanelWidth {
		p.Width = design.MinPanelWidth
	}
	if p.Height != 0 && p.Height < design.MinPanelHeight {
		p.Height = design.MinPanelHeight
	}

	style := p.getStyle()
	innerWidth := max(p.Width-style.GetHorizontalFrameSize(), 1)

	var lines []string
	if p.Title != "" {
		lines = append(lines, design.TitleStyle.Render(utils.TruncateString(p.Title, innerWidth)))
	}
	if p.Content != "" {
		for _, line := range strings.Split(p.Content, "\n") {
			if lipgloss.Width(line) > innerWidth {
				line = ansi.Truncate(line, innerWidth, "…")
			}
			lines = append(lines, line)
		}
	}

	if p.Height > 0 {
		innerHeight := max(p.Height-style.GetVerticalFrameSize(), 1)
		if len(lines) > innerHeight {
			lines = append(lines[:innerHeight-1], "…")
		}
		for len(lines) < innerHeight {
			lines = append(lines, "")
		}
	}

	// Width in lipgloss excludes the border.
	return style.
		Width(p.Width - style.GetHorizontalBorderSize()).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) getStyle() lipgloss.Style {
	switch {
	case p.Type == PanelTypeError:
		return design.PanelErrorStyle
	case p.Focused:
		return design.PanelFocusedStyle
	default:
		return design.PanelStyle
	}
}
