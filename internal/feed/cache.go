package feed

import (
	"context"
	"sync"
	"time"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

// FallbackName is shown when a reporting user cannot be resolved, matching
// what residents see for deleted or unreadable accounts.
const FallbackName = "Residente"

// NameCache is a memoizing read-through cache from user document id to
// display name. Feed snapshots re-deliver the same reporters over and over;
// without the cache every snapshot would repeat the same point lookups.
type NameCache struct {
	users repository.UserRepository
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]nameEntry
}

type nameEntry struct {
	name    string
	expires time.Time
}

func NewNameCache(users repository.UserRepository, ttl time.Duration) *NameCache {
	return &NameCache{
		users:   users,
		ttl:     ttl,
		entries: make(map[string]nameEntry),
	}
}

// DisplayName resolves userID to a display name, consulting the store only on
// a miss or an expired entry. Unresolvable users yield FallbackName, which is
// cached too so a deleted account does not trigger a lookup per snapshot.
func (c *NameCache) DisplayName(ctx context.Context, userID string) string {
	if userID == "" {
		return FallbackName
	}

	c.mu.Lock()
	if e, ok := c.entries[userID]; ok && time.Now().Before(e.expires) {
		c.mu.Unlock()
		return e.name
	}
	c.mu.Unlock()

	name := FallbackName
	user, err := c.users.GetByID(ctx, userID)
	switch {
	case err == nil && user.Name != "":
		name = user.Name
	case err != nil && !domain.IsNotFound(err):
		// Transient failure: fall back for this snapshot but do not cache,
		// so the next snapshot retries the lookup.
		logger.Warn("Name lookup failed", "user_id", userID, "error", err)
		return FallbackName
	}

	c.mu.Lock()
	c.entries[userID] = nameEntry{name: name, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return name
}

// Invalidate drops a cached name, forcing a fresh lookup on next use.
func (c *NameCache) Invalidate(userID string) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}
