package restore

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// nicknameCache keeps nickname listings for a short time; completion asks for them on every keystroke.
type nicknameCache struct {
	lru *expirable.LRU[string, []string]
}

func newNicknameCache(size int, ttl time.Duration) *nicknameCache {
	return &nicknameCache{
		lru: expirable.NewLRU[string, []string](size, nil, ttl),
	}
}

// Get returns a copy of the cached listing.
func (c *nicknameCache) Get(key string) ([]string, bool) {
	names, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	return append([]string(nil), names...), true
}

func (c *nicknameCache) Set(key string, names []string) {
	c.lru.Add(key, append([]string(nil), names...))
}

// Clear drops every listing. Called after writes that can remove nicknames.
func (c *nicknameCache) Clear() {
	c.lru.Purge()
}
