package cache

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/google/uuid"
)

// Cache is the read-through cache used by the authorization resolver and the
// session layer. It is a performance optimization only: every caller must
// behave correctly when the cache is cold or disabled.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	DeletePrefix(prefix string)
}

// WorkspaceContextKey keys a resolved workspace context by the pair that
// scopes it.
func WorkspaceContextKey(userID uuid.UUID, workspaceSlug string) string {
	return fmt.Sprintf("workspace:%s:%s", userID, workspaceSlug)
}

// WorkspaceContextPrefix covers every cached context of one user, for
// invalidation when the workspace is unknown.
func WorkspaceContextPrefix(userID uuid.UUID) string {
	return fmt.Sprintf("workspace:%s:", userID)
}

func SessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("session:%s", userID)
}

type Memory struct {
	store *gocache.Cache
}

func NewMemory() *Memory {
	return &Memory{
		store: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (m *Memory) Get(key string) (any, bool) {
	return m.store.Get(key)
}

func (m *Memory) Set(key string, value any, ttl time.Duration) {
	m.store.Set(key, value, ttl)
}

func (m *Memory) Delete(key string) {
	m.store.Delete(key)
}

func (m *Memory) DeletePrefix(prefix string) {
	for key := range m.store.Items() {
		if strings.HasPrefix(key, prefix) {
			m.store.Delete(key)
		}
	}
}
