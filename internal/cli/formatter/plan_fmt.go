package formatter

import (
	"github.com/alexanderramin/kashimitra/internal/app"
)

// FormatPlan renders the planner result for terminal output.
func FormatPlan(res app.PlanResult, width int) string {
	switch res.State {
	case app.PlannerInvalid:
		return Notice(res.Notice)
	case app.PlannerLoading:
		return Dim(res.Notice)
	case app.PlannerReady:
		return RenderBox("Your Itinerary", RenderResponse(res.Content, boxInner(width)))
	default:
		return ""
	}
}
