package components

import (
	"strings"
	"testing"

	"programctl/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPanel_Render_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		title   string
		content string
	}{
		{
			name:    "zero dimensions",
			title:   "Program",
			content: "This is test content",
		},
		{
			name:    "negative dimensions",
			width:   -10,
			height:  -5,
			title:   "Program",
			content: "This is test content",
		},
		{
			name:   "empty content",
			width:  40,
			height: 10,
			title:  "Program",
		},
		{
			name:    "very long content",
			width:   20,
			height:  5,
			title:   "Program",
			content: strings.Repeat("This is a very long line that should be truncated. ", 10),
		},
		{
			name:    "multiline content exceeding height",
			width:   30,
			height:  5,
			title:   "Program",
			content: "Line 1\nLine 2\nLine 3\nLine 4\nLine 5\nLine 6\nLine 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := NewPanel(tt.title).
				WithContent(tt.content).
				WithDimensions(tt.width, tt.height)

			output := panel.Render()

			assert.NotEmpty(t, output)
			assert.GreaterOrEqual(t, panel.Width, design.MinPanelWidth)
			assert.LessOrEqual(t, lipgloss.Width(output), panel.Width)
		})
	}
}

func TestPanel_Render_FixedHeight(t *testing.T) {
	output := NewPanel("Program").
		WithContent("a\nb\nc\nd\ne\nf").
		WithDimensions(30, 5).
		Render()

	assert.Equal(t, 5, lipgloss.Height(output))
	assert.Contains(t, output, "…")
}

func TestPanel_Render_FitsContent(t *testing.T) {
	output := NewPanel("Program").
		WithContent("Title  Summer school").
		WithDimensions(40, 0).
		Render()

	// Border, title and one content line.
	assert.Equal(t, 4, lipgloss.Height(output))
	assert.Contains(t, output, "Summer school")
}

func TestStatusBar_Render(t *testing.T) {
	bar := NewStatusBar(40).WithLeftText("page 1").WithRightText("3 total")
	out := bar.Render()
	assert.Contains(t, out, "page 1")
	assert.Contains(t, out, "3 total")
	assert.Equal(t, 40, lipgloss.Width(out))

	out = bar.WithMessage("Program 7 deleted", StatusBarSuccess).Render()
	assert.Contains(t, out, "Program 7 deleted")
	assert.NotContains(t, out, "page 1")
}

func TestStatusBar_Render_Narrow(t *testing.T) {
	out := NewStatusBar(12).
		WithLeftText("a very long left text").
		WithRightText("right").
		Render()

	assert.LessOrEqual(t, lipgloss.Width(out), 12)
	assert.NotContains(t, out, "right")
}
