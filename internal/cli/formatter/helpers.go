package formatter

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size is unknown.
const DefaultWidth = 80

const maxWidth = 100

// TermWidth returns the usable width of stdout, capped for readability.
func TermWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return ClampWidth(w)
}

// ClampWidth bounds w to a readable column count.
func ClampWidth(w int) int {
	switch {
	case w <= 0:
		return DefaultWidth
	case w > maxWidth:
		return maxWidth
	case w < 20:
		return 20
	default:
		return w
	}
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// boxInner is the content width left inside RenderBox for a given outer width.
func boxInner(width int) int {
	// border (2) + horizontal padding (4)
	if width-6 < 20 {
		return 20
	}
	return width - 6
}
