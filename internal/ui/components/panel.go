package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

// Panel wraps content in a rounded-border box with a bold title line.
// accent colors the border and title; nil uses the theme border.
func Panel(title, content string, width int, accent color.Color) string {
	border := theme.Border
	titleColor := theme.Primary
	if accent != nil {
		border = accent
		titleColor = accent
	}

	body := content
	if title != "" {
		body = lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(title) + "\n" + content
	}

	w := width - 2
	if w < 10 {
		w = 10
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(w).
		Render(body)
}

// InnerWidth is the usable text width inside a Panel of the given width.
func InnerWidth(width int) int {
	w := width - 6
	if w < 8 {
		w = 8
	}
	return w
}

// ScrollWindow returns at most height lines of text starting at *offset,
// clamping *offset so the window never runs past the last line.
func ScrollWindow(text string, offset *int, height int) string {
	lines := strings.Split(text, "\n")
	maxOff := max(len(lines)-height, 0)
	*offset = min(max(*offset, 0), maxOff)
	end := min(*offset+height, len(lines))
	return strings.Join(lines[*offset:end], "\n")
}
