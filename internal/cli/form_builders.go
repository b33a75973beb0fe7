package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/kashimitra/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// kashiHuhTheme returns a huh theme matching the formatter palette.
func kashiHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorSaffron).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorSaffron).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorSaffron)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorSaffron)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planForm collects the itinerary fields. Empty values are left for the
// planner to reject so the notice matches the non-interactive path.
func planForm(days, budget, interests *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Days").
				Placeholder("3").
				Value(days).
				Validate(validateOptionalPositiveInt),
			huh.NewInput().
				Title("Budget (₹)").
				Placeholder("5000").
				Value(budget).
				Validate(validateOptionalPositiveNumber),
			huh.NewInput().
				Title("Interests").
				Description("e.g. temples, street food, photography").
				Value(interests),
		),
	).WithTheme(kashiHuhTheme()).WithShowHelp(false)
}

func validateOptionalPositiveInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a whole number greater than zero")
	}
	return nil
}

func validateOptionalPositiveNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a number greater than zero")
	}
	return nil
}
