package app

import (
	"context"
	"sync"

	"github.com/alexanderramin/kashimitra/internal/domain"
)

type genCall struct {
	Prompt string
	Mode   domain.RequestMode
}

// fakeGenerator answers with a fixed string, or blocks on release when set.
type fakeGenerator struct {
	mu      sync.Mutex
	answer  string
	err     error
	calls   []genCall
	release chan string
	started chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, mode domain.RequestMode) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, genCall{Prompt: prompt, Mode: mode})
	release, started := f.release, f.started
	answer, err := f.answer, f.err
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case a := <-release:
			return a, err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return answer, err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
