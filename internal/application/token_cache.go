package application

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// tokenCache holds issued tokens in a bounded LRU. Entries also expire by
// their own ExpiresAt, checked against the injected clock.
type tokenCache struct {
	now     func() time.Time
	ttl     time.Duration
	entries *expirable.LRU[string, Token]
}

func newTokenCache(ttl time.Duration, maxEntries int, now func() time.Time) *tokenCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if now == nil {
		now = time.Now
	}
	return &tokenCache{
		now:     now,
		ttl:     ttl,
		entries: expirable.NewLRU[string, Token](maxEntries, nil, ttl),
	}
}

// Issue stamps token with its expiry and stores it.
func (c *tokenCache) Issue(value, userID string) Token {
	issued := c.now()
	token := Token{
		Value:     value,
		UserID:    userID,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(c.ttl),
	}
	c.entries.Add(value, token)
	return token
}

// Get returns the token for value. Expired tokens are evicted and reported
// with ok set and expired true.
func (c *tokenCache) Get(value string) (token Token, ok, expired bool) {
	token, ok = c.entries.Get(value)
	if !ok {
		return Token{}, false, false
	}
	if !token.ExpiresAt.After(c.now()) {
		c.entries.Remove(value)
		return token, true, true
	}
	return token, true, false
}

func (c *tokenCache) Remove(value string) bool {
	return c.entries.Remove(value)
}

func (c *tokenCache) Len() int {
	return c.entries.Len()
}
