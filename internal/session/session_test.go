package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetOrCreate(t *testing.T) {
	store := NewStore(time.Hour)

	token, sess := store.GetOrCreate("")
	require.NotNil(t, sess)
	_, err := uuid.Parse(token)
	assert.NoError(t, err)

	// Mesmo token devolve a mesma sessão
	sess.SetCurrentLeadID("lead-abc")
	token2, sess2 := store.GetOrCreate(token)
	assert.Equal(t, token, token2)
	assert.Equal(t, "lead-abc", sess2.CurrentLeadID())

	// Token desconhecido gera sessão nova com token fresco
	token3, sess3 := store.GetOrCreate("token-inexistente")
	assert.NotEqual(t, "token-inexistente", token3)
	assert.Empty(t, sess3.CurrentLeadID())
}

func TestContextPendingLeadLifecycle(t *testing.T) {
	var c Context

	assert.Empty(t, c.PendingLeadID())

	c.SetPendingLeadID("lead-1")
	assert.Equal(t, "lead-1", c.PendingLeadID())

	c.ClearPendingLeadID()
	assert.Empty(t, c.PendingLeadID())
}

func TestContextLastTestResultsCopies(t *testing.T) {
	var c Context

	assert.Nil(t, c.LastTestResults())

	c.SetLastTestResults(TestResults{Score: 12, TotalQuestions: 16, LeadID: "lead-1"})

	got := c.LastTestResults()
	require.NotNil(t, got)
	assert.Equal(t, 12, got.Score)

	// Mutação na cópia não vaza para a sessão
	got.Score = 0
	assert.Equal(t, 12, c.LastTestResults().Score)
}
