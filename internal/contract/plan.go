package contract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NoticeMissingFields is shown when days or budget is left blank.
const NoticeMissingFields = "Please fill in Days and Budget."

// PlanRequest is a validated itinerary request.
type PlanRequest struct {
	Days      int
	Budget    float64
	Interests string
}

// ValidationError carries the user-facing notice for a rejected form.
type ValidationError struct {
	Field  string
	Notice string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Notice
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Notice)
}

// NewPlanRequest validates raw form values. Interests may be blank.
func NewPlanRequest(days, budget, interests string) (PlanRequest, error) {
	days = strings.TrimSpace(days)
	budget = strings.TrimSpace(budget)
	if days == "" || budget == "" {
		return PlanRequest{}, &ValidationError{Notice: NoticeMissingFields}
	}

	d, err := strconv.Atoi(days)
	if err != nil || d <= 0 {
		return PlanRequest{}, &ValidationError{Field: "days", Notice: "Days must be a whole number greater than zero."}
	}
	b, err := strconv.ParseFloat(budget, 64)
	if err != nil || b <= 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return PlanRequest{}, &ValidationError{Field: "budget", Notice: "Budget must be a number greater than zero."}
	}

	return PlanRequest{
		Days:      d,
		Budget:    b,
		Interests: strings.TrimSpace(interests),
	}, nil
}

// Prompt composes the planner prompt sent to the resolver.
func (r PlanRequest) Prompt() string {
	return fmt.Sprintf(
		"Plan a %d-day trip to Varanasi with a budget of ₹%s. Interests: %s. Include food, temples, and ghats.",
		r.Days, strconv.FormatFloat(r.Budget, 'f', -1, 64), r.Interests,
	)
}
