package landing

import (
	"context"
	"sync"
	"time"

	"github.com/cohortai/landing/sanity"
)

// cardCache holds the most recent CMS posts for the revalidation window so
// page renders do not hit the content API on every request. Staleness is
// acceptable by contract; correctness is not at stake.
type cardCache struct {
	mu      sync.RWMutex
	posts   []sanity.Post
	fetched time.Time
	ttl     time.Duration
	fetch   func(context.Context) ([]sanity.Post, error)
}

func newCardCache(ttl time.Duration, fetch func(context.Context) ([]sanity.Post, error)) *cardCache {
	return &cardCache{ttl: ttl, fetch: fetch}
}

func (c *cardCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh fetch.
func (c *cardCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// Recent returns the cached posts, refreshing them once the window has
// lapsed. A failed refresh serves the previous posts when there are any:
// stale beats empty for a decorative grid.
func (c *cardCache) Recent(ctx context.Context) ([]sanity.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.fetch(ctx)
	if err != nil {
		if c.posts != nil {
			return c.posts, nil
		}
		return nil, err
	}
	if posts == nil {
		posts = []sanity.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return posts, nil
}
