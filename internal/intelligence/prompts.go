package intelligence

import (
	"strings"

	"github.com/alexanderramin/kashimitra/internal/domain"
)

// chatSystemPrompt sets the Kashi Mitra persona for free-form questions.
const chatSystemPrompt = `You are Kashi Mitra, a 2000-year-old wise spirit and guide of Varanasi. ` +
	`You are poetic, spiritual, warm, and deeply knowledgeable about the city's history, rituals (Aarti), food, and temples. ` +
	`Keep answers concise (under 3 sentences) unless asked for detail. ` +
	`Always guide the user towards spiritual peace.`

// planSystemPrompt constrains itinerary output to raw HTML structure.
const planSystemPrompt = `You are an expert travel planner for Varanasi. ` +
	`Create a detailed day-by-day itinerary based on the user's constraints. ` +
	`Format the response with HTML tags like <h3>Day 1</h3>, <ul>, <li> for readability. ` +
	"Do not use Markdown, use raw HTML. Do not include ```html blocks."

// SystemPrompt returns the system instruction for mode.
func SystemPrompt(mode domain.RequestMode) string {
	if mode == domain.ModePlan {
		return planSystemPrompt
	}
	return chatSystemPrompt
}

// BuildPrompt concatenates the mode's system instruction with the user's
// prompt into the single payload sent to the model.
func BuildPrompt(mode domain.RequestMode, prompt string) string {
	var b strings.Builder
	b.WriteString(SystemPrompt(mode))
	b.WriteString("\n\nUser: ")
	b.WriteString(prompt)
	b.WriteString("\nOutput:")
	return b.String()
}
