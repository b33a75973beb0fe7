package domain

import (
	"time"

	"github.com/google/uuid"
)

// Turn is one message in a conversation transcript.
//
// A Pending turn is the "response in flight" placeholder; it is replaced,
// never appended to, once the response resolves.
type Turn struct {
	ID        string
	Role      Role
	Content   string
	Pending   bool
	Failed    bool
	CreatedAt time.Time
}

func NewUserTurn(content string) Turn {
	return newTurn(RoleUser, content)
}

func NewAssistantTurn(content string) Turn {
	return newTurn(RoleAssistant, content)
}

// NewPendingTurn returns an assistant placeholder showing the given text.
func NewPendingTurn(placeholder string) Turn {
	t := newTurn(RoleAssistant, placeholder)
	t.Pending = true
	return t
}

// NewFailedTurn returns an assistant turn describing a failed resolution.
func NewFailedTurn(content string) Turn {
	t := newTurn(RoleAssistant, content)
	t.Failed = true
	return t
}

func newTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func (t Turn) IsUser() bool { return t.Role == RoleUser }
