package design

import (
	"github.com/charmbracelet/lipgloss"
)

// Spacing and sizes, in terminal cells.
const (
	SpaceXS = 1
	SpaceSM = 2

	MinPanelHeight = 3
	MinPanelWidth  = 20
	// LabelWidth is the width of the label column on the detail and form screens.
	LabelWidth = 14
)

// Palette. Every color adapts to light and dark terminals.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}

	ColorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}

	ColorBackground = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111111"}
	ColorSurfaceAlt = lipgloss.AdaptiveColor{Light: "#EEF2F1", Dark: "#27302F"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D4DCDA", Dark: "#3F4A48"}

	ColorText          = lipgloss.AdaptiveColor{Light: "#0B1412", Dark: "#F2F7F6"}
	ColorTextSecondary = lipgloss.AdaptiveColor{Light: "#5B6B68", Dark: "#A3B3B0"}
	ColorTextMuted     = lipgloss.AdaptiveColor{Light: "#94A3A0", Dark: "#65726F"}
)

// Text
var (
	TextStyle          = lipgloss.NewStyle().Foreground(ColorText)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	TextErrorStyle     = lipgloss.NewStyle().Foreground(ColorError)
	DimStyle           = lipgloss.NewStyle().Foreground(ColorTextMuted)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	LabelStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary).Width(LabelWidth)

	// FieldErrorStyle lines a form error up under its input.
	FieldErrorStyle = lipgloss.NewStyle().Foreground(ColorError).PaddingLeft(LabelWidth)
)

// Panels
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, SpaceXS)

	PanelErrorStyle   = PanelStyle.BorderForeground(ColorError)
	PanelFocusedStyle = PanelStyle.BorderForeground(ColorPrimary)
)

// Program list
var (
	ListHeaderStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorTextSecondary)
	ListItemStyle         = lipgloss.NewStyle().PaddingLeft(SpaceXS)
	ListItemSelectedStyle = ListItemStyle.Foreground(ColorPrimary).Bold(true)
)

// Buttons
var (
	ButtonStyle = lipgloss.NewStyle().
			Padding(0, SpaceSM).
			Background(ColorPrimary).
			Foreground(ColorBackground).
			Bold(true)

	ButtonDisabledStyle = ButtonStyle.
				Background(ColorTextMuted).
				Foreground(ColorSurfaceAlt)
)

// Status bar, one style per message kind.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorSurfaceAlt).
			Foreground(ColorText).
			Padding(0, SpaceXS)

	StatusBarInfoStyle    = StatusBarStyle.Background(ColorInfo).Foreground(ColorBackground)
	StatusBarSuccessStyle = StatusBarStyle.Background(ColorSuccess).Foreground(ColorBackground)
	StatusBarWarningStyle = StatusBarStyle.Background(ColorWarning).Foreground(ColorBackground)
	StatusBarErrorStyle   = StatusBarStyle.Background(ColorError).Foreground(ColorBackground)
)
