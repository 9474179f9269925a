package sessions_test

import (
	"testing"

	"feedbackboard/internal/sessions"

	"github.com/stretchr/testify/assert"
)

func TestState_GuardRule(t *testing.T) {
	anonymous := sessions.State{}
	alice := sessions.State{Username: "alice"}

	assert.False(t, anonymous.Authenticated())
	assert.False(t, anonymous.Owns(""))
	assert.False(t, anonymous.Owns("alice"))

	assert.True(t, alice.Authenticated())
	assert.True(t, alice.Owns("alice"))
	assert.False(t, alice.Owns("bob"))
	assert.False(t, alice.Owns(""))
}
