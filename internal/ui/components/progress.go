package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
	"github.com/abhisek/radstar/internal/viewer"
)

// ProgressBar displays a horizontal progress bar, optionally split into
// equal segments.
type ProgressBar struct {
	Label       string
	Percent     float64 // fraction in [0,1]
	ShowPercent bool
	Width       int
	Segments    int // 0 draws one continuous bar
}

// NewExplorationBar renders exploration progress given on a 0-100 scale,
// one segment per progress step.
func NewExplorationBar(progress, width int) ProgressBar {
	return ProgressBar{
		Label:       "Explored",
		Percent:     float64(progress) / viewer.MaxProgress,
		ShowPercent: true,
		Width:       width,
		Segments:    viewer.MaxProgress / viewer.ProgressStep,
	}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)
	pct := min(max(p.Percent, 0), 1)

	if p.Segments > 1 && barWidth >= 2*p.Segments {
		b.WriteString(p.segmented(barWidth, pct))
	} else {
		filled := int(float64(barWidth) * pct)
		b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
		b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	}

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(pct*100+0.5))))
	}
	return b.String()
}

// segmented fills whole segments only; a partly earned segment stays empty.
func (p ProgressBar) segmented(width int, pct float64) string {
	seg := (width - (p.Segments - 1)) / p.Segments
	done := int(pct*float64(p.Segments) + 1e-9)

	parts := make([]string, p.Segments)
	for i := range parts {
		st := theme.ProgressEmpty
		if i < done {
			st = theme.ProgressFilled
		}
		parts[i] = st.Render(strings.Repeat(" ", seg))
	}
	return strings.Join(parts, " ")
}
