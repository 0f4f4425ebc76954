package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// TruncateString cuts s to at most width terminal cells, ending with an
// ellipsis when something was cut. Wide runes count double.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// PadRight truncates s to width cells and pads it with spaces to exactly
// width cells.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(TruncateString(s, width), width)
}

// SingleLine collapses line breaks so free text fits in one table cell.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
