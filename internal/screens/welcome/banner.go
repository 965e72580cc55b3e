package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/radstar/internal/ui/theme"
)

const bannerArt = `
 ██████╗  █████╗ ██████╗ ███████╗████████╗ █████╗ ██████╗
 ██╔══██╗██╔══██╗██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██╔══██╗
 ██████╔╝███████║██║  ██║███████╗   ██║   ███████║██████╔╝
 ██╔══██╗██╔══██║██║  ██║╚════██║   ██║   ██╔══██║██╔══██╗
 ██║  ██║██║  ██║██████╔╝███████║   ██║   ██║  ██║██║  ██║
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "R A D S T A R"

// RenderBanner returns the RADSTAR banner in the primary color, or a
// one-line fallback on terminals narrower than 62 columns or shorter than 30
// rows.
func RenderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 || height < 30 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
