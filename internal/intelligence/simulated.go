package intelligence

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/kashimitra/internal/domain"
)

// DefaultSimulatedDelay is the artificial "thinking" pause of the offline responder.
const DefaultSimulatedDelay = time.Second

// SamplePlan is the fixed itinerary returned in plan mode without a credential.
const SamplePlan = `<h3>Varanasi Spiritual Journey (Simulated Plan)</h3>
<p><strong>Note:</strong> This is a sample itinerary. Add an API Key for a custom plan.</p>

<h4>Day 1: The Divine Beginning</h4>
<ul>
    <li><strong>Morning:</strong> Boat ride at Assi Ghat for sunrise aarti. Breakfast at Kashi chat bhandar.</li>
    <li><strong>Afternoon:</strong> Visit Kashi Vishwanath Temple and Annapurna Devi.</li>
    <li><strong>Evening:</strong> Witness the grand Ganga Aarti at Dashashwamedh Ghat.</li>
</ul>

<h4>Day 2: Culture & Heritage</h4>
<ul>
    <li><strong>Morning:</strong> Trip to Sarnath (Dhamek Stupa).</li>
    <li><strong>Afternoon:</strong> Explore Banaras Hindu University (BHU) and Bharat Kala Bhavan.</li>
    <li><strong>Evening:</strong> Silent meditation loop on a boat near Manikarnika.</li>
</ul>`

// FallbackAnswer is returned when no topic group matches a chat prompt.
const FallbackAnswer = "I am listening. My connection to the cosmic knowledge is currently limited (Simulated Mode), " +
	"but I can tell you about the <strong>Ghats</strong>, <strong>Food</strong>, and <strong>Temples</strong> of Varanasi. " +
	"What would you like to know?"

// topicGroup maps a set of keywords to one canned answer.
type topicGroup struct {
	Name     string
	Keywords []string
	Answer   string
}

// topicGroups is checked in order; the first group with a keyword hit wins.
var topicGroups = []topicGroup{
	{
		Name:     "food",
		Keywords: []string{"food", "eat", "kachori", "chat"},
		Answer: "Ah, the taste of Kashi! You must try the <strong>Kachori Sabzi</strong> at Ram Bhandar for breakfast, " +
			"and the <strong>Tamatar Chaat</strong> at Deena Chaat Bhandar in the evening. " +
			"And do not forget the <strong>Blue Lassi</strong> near Manikarnika!",
	},
	{
		Name:     "ghats",
		Keywords: []string{"ghat", "river", "boat"},
		Answer: "The Ghats are the soul of Varanasi. <strong>Dashashwamedh Ghat</strong> is for the vibrant Aarti, " +
			"while <strong>Assi Ghat</strong> offers a peaceful sunrise. " +
			"For the ultimate truth of life, witness the fires of <strong>Manikarnika</strong>.",
	},
	{
		Name:     "temples",
		Keywords: []string{"temple", "god", "shiva"},
		Answer: "Kashi is the city of Shiva. The <strong>Kashi Vishwanath Corridor</strong> is magnificent. " +
			"Also visit the <strong>Sankat Mochan Hanuman Temple</strong> for peace, and the <strong>Durga Kund</strong> for power.",
	},
	{
		Name:     "greeting",
		Keywords: []string{"hello", "hi", "namaste"},
		Answer: "Namaste! I am Kashi Mitra. I can guide you through the ancient alleys, tell you where to eat, " +
			"and help you find peace. What do you seek?",
	},
}

// Simulate answers prompt without any network access. Plan mode ignores the
// prompt entirely and always yields SamplePlan.
func Simulate(prompt string, mode domain.RequestMode) string {
	if mode == domain.ModePlan {
		return SamplePlan
	}
	return matchTopic(prompt).Answer
}

// matchTopic returns the first topic group whose keyword occurs in prompt,
// or a group carrying FallbackAnswer.
func matchTopic(prompt string) topicGroup {
	p := strings.ToLower(prompt)
	for _, g := range topicGroups {
		for _, kw := range g.Keywords {
			if strings.Contains(p, kw) {
				return g
			}
		}
	}
	return topicGroup{Name: "fallback", Answer: FallbackAnswer}
}

// Simulated is the offline Responder used when no credential is stored.
type Simulated struct {
	delay time.Duration
}

// NewSimulated creates a Simulated responder that pauses for delay before
// answering. A negative delay is treated as zero.
func NewSimulated(delay time.Duration) *Simulated {
	if delay < 0 {
		delay = 0
	}
	return &Simulated{delay: delay}
}

func (s *Simulated) Respond(ctx context.Context, req Request) string {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
	}
	return Simulate(req.Prompt, req.Mode)
}
