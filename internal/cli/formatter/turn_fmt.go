package formatter

import (
	"strings"

	"github.com/alexanderramin/kashimitra/internal/domain"
)

const (
	userLabel  = "You"
	guideLabel = "Kashi Mitra"
)

// FormatTurn renders one transcript turn with its speaker label.
func FormatTurn(t domain.Turn, width int) string {
	if t.IsUser() {
		return StyleUserLabel.Render(userLabel) + "\n" + RenderResponse(t.Content, width)
	}

	label := StyleGuideLabel.Render(guideLabel)
	switch {
	case t.Pending:
		return label + "\n" + Dim(t.Content)
	case t.Failed:
		return label + "\n" + ErrorText(t.Content)
	default:
		return label + "\n" + RenderResponse(t.Content, width)
	}
}

// FormatTranscript renders turns separated by blank lines.
func FormatTranscript(turns []domain.Turn, width int) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, FormatTurn(t, width))
	}
	return strings.Join(parts, "\n\n")
}
