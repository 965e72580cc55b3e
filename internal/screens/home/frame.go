package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

const titleFull = `╦═╗╔═╗╔╦╗╔═╗╔╦╗╔═╗╦═╗
╠╦╝╠═╣ ║║╚═╗ ║ ╠═╣╠╦╝
╩╚═╩ ╩═╩╝╚═╝ ╩ ╩ ╩╩╚═`

const titleCompact = "R · A · D · S · T · A · R"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows case count, journal sessions and the last case opened.
func renderStatsBar(cases, sessions int, lastCase string, cw int, compact bool) string {
	caseStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	sessionStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			caseStyle.Render(fmt.Sprintf("◉%d", cases)),
			sessionStyle.Render(fmt.Sprintf("★%d", sessions)),
		)
	} else {
		last := dimStyle.Render("▸ NO HISTORY")
		if lastCase != "" {
			last = lastStyle.Render("▸ LAST: " + lastCase)
		}
		stats = fmt.Sprintf("%s  %s  %s",
			caseStyle.Render(fmt.Sprintf("◉ %d CASES", cases)),
			sessionStyle.Render(fmt.Sprintf("★ %d SESSIONS", sessions)),
			last,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderBlock(block string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Render(block)
}

// renderCabinetFrame wraps content in a double-border frame, centered
// vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
