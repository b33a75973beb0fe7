package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ganga-at-dusk palette.
var (
	ColorSaffron = lipgloss.Color("#fe8019")
	ColorGold    = lipgloss.Color("#fabd2f")
	ColorGreen   = lipgloss.Color("#8ec07c")
	ColorRed     = lipgloss.Color("#fb4934")
	ColorBlue    = lipgloss.Color("#83a598")
	ColorPurple  = lipgloss.Color("#d3869b")
	ColorDim     = lipgloss.Color("#928374")
	ColorFg      = lipgloss.Color("#ebdbb2")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleGold   = lipgloss.NewStyle().Foreground(ColorGold)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorSaffron).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	StyleUserLabel  = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	StyleGuideLabel = lipgloss.NewStyle().Foreground(ColorSaffron).Bold(true)
)

// Header renders an upper-cased section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Notice renders a validation or status notice.
func Notice(text string) string {
	return StyleGold.Render("! " + text)
}

// ErrorText renders a failure message.
func ErrorText(text string) string {
	return StyleRed.Render(text)
}
