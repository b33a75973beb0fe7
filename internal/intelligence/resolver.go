package intelligence

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/kashimitra/internal/credential"
	"github.com/alexanderramin/kashimitra/internal/domain"
	"github.com/google/uuid"
)

// Request is one resolution handed to a Responder.
type Request struct {
	ID         string
	Prompt     string
	Mode       domain.RequestMode
	Credential credential.Credential
}

// Responder is a response strategy. Respond always yields text; failures
// are folded into the returned string.
type Responder interface {
	Respond(ctx context.Context, req Request) string
}

// Strategy names the responder a resolution was routed to.
type Strategy string

const (
	StrategySimulated Strategy = "simulated"
	StrategyRemote    Strategy = "remote"
)

// Resolver is the single entry point for generating answers. It reads the
// credential store on every call and routes to the remote responder when a
// credential is present, the simulated one otherwise.
type Resolver struct {
	store     credential.Store
	simulated Responder
	remote    Responder
	logger    *slog.Logger
}

// NewResolver wires a Resolver. A nil logger uses slog.Default().
func NewResolver(store credential.Store, simulated, remote Responder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:     store,
		simulated: simulated,
		remote:    remote,
		logger:    logger,
	}
}

// Generate resolves prompt in mode. The only error returned is ctx.Err()
// when the caller abandons the request; remote failures come back as text.
func (r *Resolver) Generate(ctx context.Context, prompt string, mode domain.RequestMode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	req := Request{
		ID:     uuid.New().String(),
		Prompt: prompt,
		Mode:   mode,
	}

	strategy, cred := r.selectStrategy(ctx, req.ID)
	req.Credential = cred

	var text string
	if strategy == StrategyRemote {
		text = r.remote.Respond(ctx, req)
	} else {
		text = r.simulated.Respond(ctx, req)
	}

	attrs := []any{
		"request_id", req.ID,
		"mode", string(mode),
		"strategy", string(strategy),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err := ctx.Err(); err != nil {
		r.logger.WarnContext(ctx, "resolve_abandoned", append(attrs, "error", err.Error())...)
		return "", err
	}
	r.logger.InfoContext(ctx, "resolve", attrs...)
	return text, nil
}

// Strategy reports which responder the next Generate would use.
func (r *Resolver) Strategy(ctx context.Context) Strategy {
	s, _ := r.selectStrategy(ctx, "")
	return s
}

func (r *Resolver) selectStrategy(ctx context.Context, requestID string) (Strategy, credential.Credential) {
	cred, ok, err := r.store.Get(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "credential_read_failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		return StrategySimulated, ""
	}
	if !ok {
		return StrategySimulated, ""
	}
	return StrategyRemote, cred
}
