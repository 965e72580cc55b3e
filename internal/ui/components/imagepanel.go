package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/imagery"
	"github.com/abhisek/radstar/internal/ui/theme"
	"github.com/abhisek/radstar/internal/viewer"
)

// ImagePanel shows one resolved image slot: its modality and view choices
// and the image reference. Images are opaque; only the reference is shown.
type ImagePanel struct {
	Label   string
	Image   viewer.ImageRef
	Focused bool
}

// View renders the panel at the given width.
func (p ImagePanel) View(width int) string {
	inner := InnerWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder

	b.WriteString(dim.Render("Modality  "))
	b.WriteString(choiceRow(imagery.Modalities(p.Image.ImageSet), p.Image.Modality))
	b.WriteString("\n")
	b.WriteString(dim.Render("View      "))
	b.WriteString(choiceRow(imagery.Views(p.Image.ImageSet, p.Image.Modality), p.Image.View))
	b.WriteString("\n\n")

	if p.Image.Available() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("▣ " + p.Image.Modality + " · " + p.Image.View))
		b.WriteString("\n")
		b.WriteString(dim.Render(truncate(p.Image.Ref, inner)))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No image available for " + p.Image.Modality + " " + p.Image.View))
	}

	title := p.Label
	if p.Image.CaseID != "" {
		title += " · " + p.Image.CaseID
	}
	var accent = theme.Border
	if p.Focused {
		accent = theme.Primary
	}
	return Panel(title, b.String(), width, accent)
}

func choiceRow(options []string, current string) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		if o == current {
			parts = append(parts, theme.Selected.Render("["+o+"]"))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Render(o))
		}
	}
	return strings.Join(parts, "  ")
}
