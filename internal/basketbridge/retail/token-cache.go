package retail

import (
	"sync"
	"time"
)

// TokenCache is the single process-wide bearer-token slot. Concurrent
// submissions that both observe a miss will both acquire a token; both
// are valid and the last write wins, so no refresh coordination exists.
type TokenCache struct {
	mux    sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

func (c *TokenCache) Get(now time.Time) (string, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.token == "" || !now.Before(c.expiry) {
		return "", false
	}
	return c.token, true
}

func (c *TokenCache) Set(token string, expiry time.Time) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.token = token
	c.expiry = expiry
}

// Invalidate drops the cached token. Called on every configuration
// change: a token minted for the old credentials must not outlive them.
func (c *TokenCache) Invalidate() {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.token = ""
	c.expiry = time.Time{}
}
