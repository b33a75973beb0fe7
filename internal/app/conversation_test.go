package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/kashimitra/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_OpenGreetsOnce(t *testing.T) {
	c := NewConversation(&fakeGenerator{})
	assert.Equal(t, StateClosed, c.State())

	c.Open()
	c.Close()
	c.Open()

	tr := c.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, Greeting, tr[0].Content)
	assert.Equal(t, domain.RoleAssistant, tr[0].Role)
	assert.Equal(t, StateOpened, c.State())
}

func TestConversation_Toggle(t *testing.T) {
	c := NewConversation(&fakeGenerator{})

	assert.True(t, c.Toggle())
	assert.Equal(t, StateOpened, c.State())
	assert.False(t, c.Toggle())
	assert.Equal(t, StateClosed, c.State())
	assert.Len(t, c.Transcript(), 1)
}

func TestConversation_Submit(t *testing.T) {
	gen := &fakeGenerator{answer: "Try the kachori at dawn."}
	c := NewConversation(gen)
	c.Open()

	turn, err := c.Submit(context.Background(), "  where to eat?  ")

	require.NoError(t, err)
	assert.Equal(t, "Try the kachori at dawn.", turn.Content)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, "where to eat?", gen.calls[0].Prompt)
	assert.Equal(t, domain.ModeChat, gen.calls[0].Mode)

	tr := c.Transcript()
	require.Len(t, tr, 3)
	assert.Equal(t, domain.RoleUser, tr[1].Role)
	assert.Equal(t, "where to eat?", tr[1].Content)
	assert.Equal(t, "Try the kachori at dawn.", tr[2].Content)
	assert.False(t, tr[2].Pending)
	assert.Equal(t, StateOpened, c.State())
}

func TestConversation_EmptyInput(t *testing.T) {
	gen := &fakeGenerator{answer: "x"}
	c := NewConversation(gen)
	c.Open()

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := c.Submit(context.Background(), in)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	assert.Len(t, c.Transcript(), 1)
	assert.Equal(t, 0, gen.callCount())
}

func TestConversation_BeginOnClosedSurfaceOpens(t *testing.T) {
	c := NewConversation(&fakeGenerator{})

	p, err := c.Begin("namaste")
	require.NoError(t, err)

	assert.Equal(t, "namaste", p.Prompt)
	assert.Equal(t, StateAwaitingResponse, c.State())
	tr := c.Transcript()
	require.Len(t, tr, 3)
	assert.Equal(t, Greeting, tr[0].Content)
	assert.True(t, tr[2].Pending)
	assert.Equal(t, PendingPlaceholder, tr[2].Content)
}

func TestConversation_SecondBeginWhilePending(t *testing.T) {
	c := NewConversation(&fakeGenerator{})
	c.Open()

	_, err := c.Begin("first")
	require.NoError(t, err)
	_, err = c.Begin("second")

	assert.ErrorIs(t, err, ErrRequestPending)
	assert.Len(t, c.Transcript(), 3)
}

func TestConversation_CompleteStaleID(t *testing.T) {
	c := NewConversation(&fakeGenerator{})
	c.Open()

	p, err := c.Begin("first")
	require.NoError(t, err)

	assert.False(t, c.Complete(p.ID+1, "wrong"))
	assert.True(t, c.Complete(p.ID, "right"))
	assert.False(t, c.Complete(p.ID, "again"))

	tr := c.Transcript()
	assert.Equal(t, "right", tr[len(tr)-1].Content)
}

func TestConversation_Fail(t *testing.T) {
	c := NewConversation(&fakeGenerator{})
	c.Open()
	p, err := c.Begin("q")
	require.NoError(t, err)

	assert.True(t, c.Fail(p.ID, errors.New("boom")))

	tr := c.Transcript()
	last := tr[len(tr)-1]
	assert.True(t, last.Failed)
	assert.False(t, last.Pending)
	assert.Equal(t, "boom", last.Content)
	assert.Equal(t, StateOpened, c.State())
}

func TestConversation_SubmitCanceled(t *testing.T) {
	gen := &fakeGenerator{release: make(chan string)}
	c := NewConversation(gen)
	c.Open()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	turn, err := c.Submit(ctx, "q")

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, turn.Failed)
}

func TestConversation_ResetDropsInFlight(t *testing.T) {
	gen := &fakeGenerator{release: make(chan string), started: make(chan struct{})}
	c := NewConversation(gen)
	c.Open()

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), "slow question")
		done <- err
	}()
	<-gen.started

	c.Reset()
	gen.release <- "late answer"

	assert.ErrorIs(t, <-done, ErrSuperseded)
	tr := c.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, Greeting, tr[0].Content)
	assert.Equal(t, StateOpened, c.State())
}

func TestConversation_ResetWhileClosed(t *testing.T) {
	c := NewConversation(&fakeGenerator{answer: "a"})
	_, err := c.Submit(context.Background(), "q")
	require.NoError(t, err)
	c.Close()

	c.Reset()

	assert.Empty(t, c.Transcript())
	c.Open()
	assert.Len(t, c.Transcript(), 1)
}

func TestConversation_TranscriptIsCopy(t *testing.T) {
	c := NewConversation(&fakeGenerator{})
	c.Open()

	tr := c.Transcript()
	tr[0].Content = "mutated"

	assert.Equal(t, Greeting, c.Transcript()[0].Content)
}

// N submissions produce 2N turns plus the greeting, with one generator call
// each.
func TestConversation_TurnCount(t *testing.T) {
	for _, n := range []int{0, 1, 5, 20} {
		gen := &fakeGenerator{answer: "ok"}
		c := NewConversation(gen)
		c.Open()

		for i := 0; i < n; i++ {
			_, err := c.Submit(context.Background(), fmt.Sprintf("question %d", i))
			require.NoError(t, err)
		}

		tr := c.Transcript()
		assert.Len(t, tr, 2*n+1, "n=%d", n)
		assert.Equal(t, n, gen.callCount())
		for i := 1; i < len(tr); i += 2 {
			assert.True(t, tr[i].IsUser())
			assert.False(t, tr[i+1].IsUser())
			assert.False(t, tr[i+1].Pending)
		}
	}
}
