package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗███╗   ██╗██╗  ██╗ ██████╗
 ██╔════╝██║████╗  ██║██║ ██╔╝██╔═══██╗
 █████╗  ██║██╔██╗ ██║█████╔╝ ██║   ██║
 ██╔══╝  ██║██║╚██╗██║██╔═██╗ ██║   ██║
 ██║     ██║██║ ╚████║██║  ██╗╚██████╔╝
 ╚═╝     ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝ ╚═════╝`

const bannerCompact = "F I N K O"

// bannerWidth is the narrowest terminal the full banner fits in.
const bannerWidth = 41

// RenderBanner returns the FINKO banner styled in the primary color, or a
// compact fallback on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
