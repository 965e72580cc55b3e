package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

// MotifVariant selects which constellation motif to display.
type MotifVariant int

const (
	MotifIdle      MotifVariant = iota // No journal history
	MotifReturning                     // A previous session exists
	MotifComplete                      // Last session made at least four node visits
)

const motifIdle = `○ ·   · ○
   · ○ ·
     ·
     ○`

const motifReturning = `● ·   · ○
   · ◉ ·
     ·
     ○`

const motifComplete = `● ·   · ●
   · ◉ ·
     ·
     ●`

// RenderMotif returns the motif art for the given variant.
func RenderMotif(variant MotifVariant) string {
	art := motifIdle
	fg := theme.TextDim

	switch variant {
	case MotifReturning:
		art = motifReturning
		fg = theme.Primary
	case MotifComplete:
		art = motifComplete
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
