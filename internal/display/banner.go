package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

// RenderBanner returns the startup art centred for the terminal the
// process is attached to. Line width is measured per cell rather than
// per byte so non-ASCII glyphs in the art don't skew the centering.
// To change the banner just replace banner.txt.
func RenderBanner() string {
	lines := strings.Split(strings.TrimRight(bannerArt, "\n"), "\n")

	artWidth := 0
	for _, l := range lines {
		if w := lipgloss.Width(l); w > artWidth {
			artWidth = w
		}
	}

	// One indent for the whole block keeps the art's own alignment intact.
	pad := 0
	if tw := terminalWidth(); tw > artWidth {
		pad = (tw - artWidth) / 2
	}
	indent := strings.Repeat(" ", pad)

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(indent)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// terminalWidth returns stdout's column count, or 80 when stdout is not
// a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
