package app

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/kashimitra/internal/contract"
	"github.com/alexanderramin/kashimitra/internal/domain"
)

// LoadingIndicator is shown while a plan is being generated.
const LoadingIndicator = "Consulting the AI Guide..."

// PlannerState is the lifecycle state of the planner form.
type PlannerState string

const (
	PlannerIdle    PlannerState = "idle"
	PlannerInvalid PlannerState = "invalid"
	PlannerLoading PlannerState = "loading"
	PlannerReady   PlannerState = "ready"
)

// PlanResult is what the planner surface displays.
type PlanResult struct {
	State     PlannerState
	Notice    string
	Content   string
	RequestID uint64
}

// Planner validates itinerary requests and resolves them in plan mode. When
// submits overlap, only the latest result is kept.
type Planner struct {
	gen Generator

	mu     sync.Mutex
	seq    uint64
	result PlanResult
}

func NewPlanner(gen Generator) *Planner {
	return &Planner{gen: gen, result: PlanResult{State: PlannerIdle}}
}

// Submit validates the raw form values and, if they pass, generates a plan.
// A validation failure returns a *contract.ValidationError without calling
// the generator.
func (p *Planner) Submit(ctx context.Context, days, budget, interests string) (PlanResult, error) {
	req, err := contract.NewPlanRequest(days, budget, interests)
	if err != nil {
		var verr *contract.ValidationError
		notice := err.Error()
		if errors.As(err, &verr) {
			notice = verr.Notice
		}
		p.mu.Lock()
		p.seq++
		p.result = PlanResult{State: PlannerInvalid, Notice: notice, RequestID: p.seq}
		res := p.result
		p.mu.Unlock()
		return res, err
	}

	p.mu.Lock()
	p.seq++
	id := p.seq
	p.result = PlanResult{State: PlannerLoading, Notice: LoadingIndicator, RequestID: id}
	p.mu.Unlock()

	content, err := p.gen.Generate(ctx, req.Prompt(), domain.ModePlan)

	p.mu.Lock()
	defer p.mu.Unlock()
	if id != p.seq {
		return PlanResult{}, ErrSuperseded
	}
	if err != nil {
		p.result = PlanResult{State: PlannerIdle, RequestID: id}
		return p.result, err
	}
	p.result = PlanResult{State: PlannerReady, Content: content, RequestID: id}
	return p.result, nil
}

// Snapshot returns the current display state.
func (p *Planner) Snapshot() PlanResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}
