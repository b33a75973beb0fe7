package formatter

import "fmt"

// FormatKeyStatus describes the active response mode and the masked key.
func FormatKeyStatus(remote bool, masked string) string {
	if !remote {
		return fmt.Sprintf("%s %s\n%s",
			StyleGold.Render("●"), Bold("Simulated mode"),
			Dim("  No API key stored. Run `kashimitra key set` to enable live answers."))
	}
	return fmt.Sprintf("%s %s\n  %s %s",
		StyleGreen.Render("●"), Bold("Live mode (Gemini)"),
		Dim("key:"), masked)
}
