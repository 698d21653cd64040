package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// CachingVerifier remembers successful verifications for a short TTL so a
// remote verifier is not called on every request. Failures are not cached.
type CachingVerifier struct {
	inner TokenVerifier
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	items     map[string]cachedUser
	lastPrune time.Time
}

type cachedUser struct {
	user      UserContext
	expiresAt time.Time
}

// NewCachingVerifier wraps inner with a TTL cache
func NewCachingVerifier(inner TokenVerifier, ttl time.Duration) *CachingVerifier {
	return &CachingVerifier{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]cachedUser),
	}
}

// Verify implements TokenVerifier
func (c *CachingVerifier) Verify(ctx context.Context, token string) (*UserContext, error) {
	key := tokenKey(token)
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if ok && now.Before(item.expiresAt) {
		user := item.user
		return &user, nil
	}

	user, err := c.inner.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.items[key] = cachedUser{user: *user, expiresAt: now.Add(c.ttl)}
	if now.Sub(c.lastPrune) >= time.Minute {
		c.pruneLocked(now)
	}
	c.mu.Unlock()

	return user, nil
}

// Len returns the number of cached entries, expired ones included
func (c *CachingVerifier) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *CachingVerifier) pruneLocked(now time.Time) {
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
		}
	}
	c.lastPrune = now
}

// tokenKey hashes the token so raw credentials are not held as map keys
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
