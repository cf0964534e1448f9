package quill

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/quill/content"
)

// PostCache is an in-memory cache over a content.Source with TTL. It is itself
// a content.Source, so the server and the static build read through it alike.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.PostSummary
	full    map[string]content.Post
	fetched time.Time
	ttl     time.Duration
	src     content.Source
}

// NewPostCache creates a PostCache backed by src.
func NewPostCache(src content.Source, ttl time.Duration) *PostCache {
	return &PostCache{src: src, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.full = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.src.Posts(ctx)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []content.PostSummary{}
	}
	c.posts = posts
	c.full = make(map[string]content.Post)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]content.PostSummary, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c.posts, nil
}

// Posts returns published posts, newest first.
func (c *PostCache) Posts(ctx context.Context) ([]content.PostSummary, error) {
	return c.ensureLoaded(ctx)
}

// Post returns a single published post by slug, or content.ErrNotFound.
func (c *PostCache) Post(ctx context.Context, slug string) (content.Post, error) {
	posts, err := c.ensureLoaded(ctx)
	if err != nil {
		return content.Post{}, err
	}
	if !containsSlug(posts, slug) {
		return content.Post{}, content.ErrNotFound
	}

	c.mu.RLock()
	p, ok := c.full[slug]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err = c.src.Post(ctx, slug)
	if err != nil {
		return content.Post{}, err
	}
	c.mu.Lock()
	if c.full != nil {
		c.full[slug] = p
	}
	c.mu.Unlock()
	return p, nil
}

// Neighbours returns the posts published right before (prev) and after
// (next) the post with slug.
func (c *PostCache) Neighbours(ctx context.Context, slug string) (prev, next content.Maybe[content.PostSummary], err error) {
	posts, err := c.ensureLoaded(ctx)
	if err != nil {
		return prev, next, err
	}
	for i, p := range posts {
		if p.Slug != slug {
			continue
		}
		if i+1 < len(posts) {
			prev = content.Some(posts[i+1])
		}
		if i > 0 {
			next = content.Some(posts[i-1])
		}
		break
	}
	return prev, next, nil
}

func containsSlug(posts []content.PostSummary, slug string) bool {
	for _, p := range posts {
		if p.Slug == slug {
			return true
		}
	}
	return false
}
