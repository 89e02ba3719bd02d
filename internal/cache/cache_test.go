package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMemory_SetGetDelete(t *testing.T) {
	memory := NewMemory()

	memory.Set("key", "value", time.Minute)

	value, found := memory.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", value)

	memory.Delete("key")

	_, found = memory.Get("key")
	assert.False(t, found)
}

func TestMemory_TTLExpiry(t *testing.T) {
	memory := NewMemory()

	memory.Set("short-lived", "value", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, found := memory.Get("short-lived")
	assert.False(t, found)
}

func TestMemory_DeletePrefix(t *testing.T) {
	memory := NewMemory()
	userID := uuid.New()
	otherID := uuid.New()

	memory.Set(WorkspaceContextKey(userID, "acme"), 1, time.Minute)
	memory.Set(WorkspaceContextKey(userID, "globex"), 2, time.Minute)
	memory.Set(WorkspaceContextKey(otherID, "acme"), 3, time.Minute)
	memory.Set(SessionKey(userID), 4, time.Minute)

	memory.DeletePrefix(WorkspaceContextPrefix(userID))

	_, found := memory.Get(WorkspaceContextKey(userID, "acme"))
	assert.False(t, found)
	_, found = memory.Get(WorkspaceContextKey(userID, "globex"))
	assert.False(t, found)

	// Other users and the session namespace are untouched.
	_, found = memory.Get(WorkspaceContextKey(otherID, "acme"))
	assert.True(t, found)
	_, found = memory.Get(SessionKey(userID))
	assert.True(t, found)
}

func TestKeys_AreNamespaced(t *testing.T) {
	userID := uuid.New()

	assert.NotEqual(t,
		WorkspaceContextKey(userID, "acme"),
		WorkspaceContextKey(userID, "globex"),
	)
	assert.NotEqual(t, WorkspaceContextKey(userID, "acme"), SessionKey(userID))

	assert.Contains(t, WorkspaceContextKey(userID, "acme"), WorkspaceContextPrefix(userID))
}
