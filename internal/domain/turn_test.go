package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserTurn(t *testing.T) {
	turn := NewUserTurn("where to eat?")

	assert.NotEmpty(t, turn.ID)
	assert.Equal(t, RoleUser, turn.Role)
	assert.Equal(t, "where to eat?", turn.Content)
	assert.True(t, turn.IsUser())
	assert.False(t, turn.Pending)
	assert.False(t, turn.Failed)
	assert.False(t, turn.CreatedAt.IsZero())
}

func TestNewPendingTurn(t *testing.T) {
	turn := NewPendingTurn("Consulting the stars...")

	assert.Equal(t, RoleAssistant, turn.Role)
	assert.True(t, turn.Pending)
	assert.False(t, turn.IsUser())
}

func TestNewFailedTurn(t *testing.T) {
	turn := NewFailedTurn("context canceled")

	assert.Equal(t, RoleAssistant, turn.Role)
	assert.True(t, turn.Failed)
	assert.False(t, turn.Pending)
}

func TestTurnIDsAreUnique(t *testing.T) {
	a := NewAssistantTurn("a")
	b := NewAssistantTurn("a")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRequestModeString(t *testing.T) {
	assert.Equal(t, "chat", ModeChat.String())
	assert.Equal(t, "plan", ModePlan.String())
}
