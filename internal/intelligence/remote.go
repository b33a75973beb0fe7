package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/kashimitra/internal/domain"
	"github.com/alexanderramin/kashimitra/internal/llm"
)

// ApologyPrefix opens every converted remote failure.
const ApologyPrefix = "I apologize, my connection to the cosmos is weak right now."

// Apology converts a remote failure into a user-facing answer. A service
// error contributes only the message Gemini reported.
func Apology(err error) string {
	msg := err.Error()
	var se *llm.ServiceError
	if errors.As(err, &se) && se.Message != "" {
		msg = se.Message
	}
	return fmt.Sprintf("%s (Error: %s)", ApologyPrefix, msg)
}

// Remote is the live Responder backed by the Gemini client. It never falls
// back to the simulated engine; failures become an Apology.
type Remote struct {
	client llm.LLMClient
}

// NewRemote creates a Remote responder over client.
func NewRemote(client llm.LLMClient) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Respond(ctx context.Context, req Request) string {
	resp, err := r.client.Generate(ctx, llm.GenerateRequest{
		Task:   taskFor(req.Mode),
		Prompt: BuildPrompt(req.Mode, req.Prompt),
		APIKey: string(req.Credential),
	})
	if err != nil {
		return Apology(err)
	}
	if resp == nil {
		return Apology(fmt.Errorf("%w: empty response", llm.ErrInvalidOutput))
	}
	return resp.Text
}

func taskFor(mode domain.RequestMode) llm.TaskType {
	if mode == domain.ModePlan {
		return llm.TaskPlan
	}
	return llm.TaskChat
}
