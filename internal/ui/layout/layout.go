package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the available height for screen content.
func ContentHeight(totalHeight int) int {
	h := totalHeight - HeaderHeight - FooterHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nThe constellation needs at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// HeaderStatus is the right-hand side of the header: the open case and
// exploration progress. A zero value hides it.
type HeaderStatus struct {
	CaseName string
	Progress int
	Guided   bool
}

// Breadcrumb joins screen titles with " › ", dropping the oldest crumbs
// until the trail fits in maxWidth cells.
func Breadcrumb(crumbs []string, maxWidth int) string {
	const sep = " › "
	trail := strings.Join(crumbs, sep)
	for len(crumbs) > 1 && lipgloss.Width(trail) > maxWidth {
		crumbs = crumbs[1:]
		trail = "…" + sep + strings.Join(crumbs, sep)
	}
	return trail
}

func (s HeaderStatus) render() string {
	if s.CaseName == "" {
		return ""
	}
	out := lipgloss.NewStyle().Foreground(theme.Secondary).Render("◉ "+s.CaseName) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("▰ %d%%", s.Progress))
	if s.Guided {
		out += theme.Hint.Italic(false).Render("  guided")
	}
	return out
}

// RenderHeader renders the app name, the centered title and the case status.
func RenderHeader(title string, status HeaderStatus, width int) string {
	left := theme.Selected.Render("  radstar")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := status.render()

	inner := max(width-4, 0) // border and padding
	leftLen, centerLen, rightLen := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-centerLen)/2-leftLen, 1)
	rightGap := max(inner-leftLen-leftGap-centerLen-rightLen, 1)

	return bar(width, left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right)
}

// RenderFooter renders key hints. When they do not fit, hints are dropped
// from the middle so the first ones and the last one (usually quit) stay.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.Strong.Render(h.Key)+" "+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}

	inner := max(width-6, 0)
	content := strings.Join(parts, sep)
	for len(parts) > 2 && lipgloss.Width(content) > inner {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
		content = strings.Join(parts[:len(parts)-1], sep) + sep + "…" + sep + parts[len(parts)-1]
	}
	return bar(width, "  "+content)
}

// bar draws the rounded card used for the header and footer.
func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)
	return header + "\n" + body + "\n" + footer
}
