package app

import (
	"context"

	"github.com/alexanderramin/kashimitra/internal/domain"
)

// Generator produces an answer for a prompt. intelligence.Resolver is the
// production implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string, mode domain.RequestMode) (string, error)
}
