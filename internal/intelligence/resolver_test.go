package intelligence

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/kashimitra/internal/credential"
	"github.com/alexanderramin/kashimitra/internal/domain"
	"github.com/alexanderramin/kashimitra/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingResponder captures requests and answers with a fixed string.
type recordingResponder struct {
	mu     sync.Mutex
	answer string
	reqs   []Request
}

func (r *recordingResponder) Respond(_ context.Context, req Request) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return r.answer
}

func (r *recordingResponder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context) (credential.Credential, bool, error) {
	return "", false, errors.New("database is locked")
}
func (brokenStore) Set(context.Context, string) error { return nil }
func (brokenStore) Clear(context.Context) error        { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestResolver_NoCredential_UsesSimulated(t *testing.T) {
	sim := &recordingResponder{answer: "offline"}
	remote := &recordingResponder{answer: "online"}
	r := NewResolver(credential.NewMemoryStore(), sim, remote, quietLogger())

	got, err := r.Generate(context.Background(), "hello", domain.ModeChat)

	require.NoError(t, err)
	assert.Equal(t, "offline", got)
	assert.Equal(t, 1, sim.count())
	assert.Equal(t, 0, remote.count())
	assert.Equal(t, StrategySimulated, r.Strategy(context.Background()))
}

func TestResolver_WithCredential_UsesRemote(t *testing.T) {
	store := credential.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "AIza-test"))
	sim := &recordingResponder{answer: "offline"}
	remote := &recordingResponder{answer: "online"}
	r := NewResolver(store, sim, remote, quietLogger())

	got, err := r.Generate(context.Background(), "plan it", domain.ModePlan)

	require.NoError(t, err)
	assert.Equal(t, "online", got)
	assert.Equal(t, 0, sim.count())
	require.Equal(t, 1, remote.count())
	assert.Equal(t, credential.Credential("AIza-test"), remote.reqs[0].Credential)
	assert.Equal(t, domain.ModePlan, remote.reqs[0].Mode)
	assert.NotEmpty(t, remote.reqs[0].ID)
	assert.Equal(t, StrategyRemote, r.Strategy(context.Background()))
}

func TestResolver_ReadsStoreOnEveryCall(t *testing.T) {
	store := credential.NewMemoryStore()
	sim := &recordingResponder{answer: "offline"}
	remote := &recordingResponder{answer: "online"}
	r := NewResolver(store, sim, remote, quietLogger())
	ctx := context.Background()

	got, _ := r.Generate(ctx, "q", domain.ModeChat)
	assert.Equal(t, "offline", got)

	require.NoError(t, store.Set(ctx, "k"))
	got, _ = r.Generate(ctx, "q", domain.ModeChat)
	assert.Equal(t, "online", got)

	require.NoError(t, store.Clear(ctx))
	got, _ = r.Generate(ctx, "q", domain.ModeChat)
	assert.Equal(t, "offline", got)
}

func TestResolver_StoreErrorFallsBackToSimulated(t *testing.T) {
	var logs bytes.Buffer
	sim := &recordingResponder{answer: "offline"}
	remote := &recordingResponder{answer: "online"}
	r := NewResolver(brokenStore{}, sim, remote, slog.New(slog.NewTextHandler(&logs, nil)))

	got, err := r.Generate(context.Background(), "q", domain.ModeChat)

	require.NoError(t, err)
	assert.Equal(t, "offline", got)
	assert.Contains(t, logs.String(), "credential_read_failed")
}

func TestResolver_CanceledContext(t *testing.T) {
	sim := &recordingResponder{answer: "offline"}
	r := NewResolver(credential.NewMemoryStore(), sim, &recordingResponder{}, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Generate(ctx, "q", domain.ModeChat)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sim.count())
}

func TestResolver_LogsStrategyWithoutCredential(t *testing.T) {
	var logs bytes.Buffer
	store := credential.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "very-secret-key"))
	r := NewResolver(store, &recordingResponder{}, &recordingResponder{answer: "x"}, slog.New(slog.NewTextHandler(&logs, nil)))

	_, err := r.Generate(context.Background(), "q", domain.ModeChat)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "strategy=remote")
	assert.Contains(t, out, "mode=chat")
	assert.NotContains(t, out, "very-secret-key")
}

// Without a credential every prompt resolves to non-empty text within the
// simulated delay, in both modes.
func TestResolver_SimulatedAlwaysResolves(t *testing.T) {
	delay := 20 * time.Millisecond
	r := NewResolver(credential.NewMemoryStore(), NewSimulated(delay), &recordingResponder{}, quietLogger())

	prompts := []string{"", " ", "food", "ghat", "temple", "hi", "random words", strings.Repeat("x", 5000)}
	for _, mode := range []domain.RequestMode{domain.ModeChat, domain.ModePlan} {
		for _, p := range prompts {
			start := time.Now()
			got, err := r.Generate(context.Background(), p, mode)
			elapsed := time.Since(start)

			require.NoError(t, err)
			assert.NotEmpty(t, got)
			assert.GreaterOrEqual(t, elapsed, delay)
			assert.Less(t, elapsed, delay+time.Second)
		}
	}
}

// A remote failure never escapes the resolver as an error.
func TestResolver_RemoteFailureIsText(t *testing.T) {
	store := credential.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "k"))
	remote := NewRemote(&fakeLLM{err: &llm.ServiceError{Code: 403, Message: "permission denied"}})
	r := NewResolver(store, NewSimulated(0), remote, quietLogger())

	got, err := r.Generate(context.Background(), "q", domain.ModeChat)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, ApologyPrefix))
	assert.Contains(t, got, "permission denied")
}
