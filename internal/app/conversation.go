package app

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/kashimitra/internal/domain"
)

const (
	// Greeting opens an empty transcript.
	Greeting = "Namaste. I am Kashi Mitra. Ask me anything."
	// PendingPlaceholder stands in for the assistant turn while waiting.
	PendingPlaceholder = "Consulting the stars..."
)

// ConversationState is the lifecycle state of the chat surface.
type ConversationState string

const (
	StateClosed           ConversationState = "closed"
	StateOpened           ConversationState = "opened"
	StateAwaitingResponse ConversationState = "awaiting_response"
)

// Pending identifies a submitted message awaiting its answer.
type Pending struct {
	ID     uint64
	Prompt string
}

// Conversation owns the chat transcript and the open/closed surface. Begin,
// Complete and Fail let an async caller drive one exchange; Submit does the
// same synchronously.
type Conversation struct {
	gen Generator

	mu         sync.Mutex
	state      ConversationState
	transcript []domain.Turn
	seq        uint64
	pending    bool
}

// NewConversation creates a closed conversation with an empty transcript.
func NewConversation(gen Generator) *Conversation {
	return &Conversation{gen: gen, state: StateClosed}
}

// Open shows the surface, greeting on the first open of an empty transcript.
func (c *Conversation) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openLocked()
}

func (c *Conversation) openLocked() {
	if c.state != StateClosed {
		return
	}
	if len(c.transcript) == 0 {
		c.transcript = append(c.transcript, domain.NewAssistantTurn(Greeting))
	}
	if c.pending {
		c.state = StateAwaitingResponse
	} else {
		c.state = StateOpened
	}
}

// Close hides the surface. The transcript and any pending request survive.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
}

// Toggle flips between closed and open and reports whether it is now open.
func (c *Conversation) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		c.openLocked()
		return true
	}
	c.state = StateClosed
	return false
}

// Begin records a user message and a placeholder turn.
func (c *Conversation) Begin(text string) (Pending, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pending{}, ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return Pending{}, ErrRequestPending
	}
	c.openLocked()

	c.transcript = append(c.transcript,
		domain.NewUserTurn(text),
		domain.NewPendingTurn(PendingPlaceholder),
	)
	c.seq++
	c.pending = true
	c.state = StateAwaitingResponse
	return Pending{ID: c.seq, Prompt: text}, nil
}

// Complete replaces the placeholder for id with the answer. It reports false
// and changes nothing when id is stale.
func (c *Conversation) Complete(id uint64, text string) bool {
	_, ok := c.settle(id, domain.NewAssistantTurn(text))
	return ok
}

// Fail replaces the placeholder for id with an error turn.
func (c *Conversation) Fail(id uint64, err error) bool {
	_, ok := c.settle(id, failedTurn(err))
	return ok
}

func failedTurn(err error) domain.Turn {
	msg := "Something went wrong."
	if err != nil {
		msg = err.Error()
	}
	return domain.NewFailedTurn(msg)
}

func (c *Conversation) settle(id uint64, turn domain.Turn) (domain.Turn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pending || id != c.seq {
		return domain.Turn{}, false
	}
	for i := len(c.transcript) - 1; i >= 0; i-- {
		if c.transcript[i].Pending {
			c.transcript[i] = turn
			break
		}
	}
	c.pending = false
	if c.state == StateAwaitingResponse {
		c.state = StateOpened
	}
	return turn, true
}

// Submit runs one full exchange and returns the turn that replaced the
// placeholder.
func (c *Conversation) Submit(ctx context.Context, text string) (domain.Turn, error) {
	p, err := c.Begin(text)
	if err != nil {
		return domain.Turn{}, err
	}

	answer, err := c.gen.Generate(ctx, p.Prompt, domain.ModeChat)
	if err != nil {
		turn, ok := c.settle(p.ID, failedTurn(err))
		if !ok {
			return domain.Turn{}, ErrSuperseded
		}
		return turn, err
	}
	turn, ok := c.settle(p.ID, domain.NewAssistantTurn(answer))
	if !ok {
		return domain.Turn{}, ErrSuperseded
	}
	return turn, nil
}

// Reset clears the transcript and drops any in-flight answer. An open
// surface is greeted again.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = nil
	c.seq++
	c.pending = false
	if c.state != StateClosed {
		c.transcript = append(c.transcript, domain.NewAssistantTurn(Greeting))
		c.state = StateOpened
	}
}

// Transcript returns a copy of the turns in order.
func (c *Conversation) Transcript() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Conversation) State() ConversationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
