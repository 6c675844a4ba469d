package api

import (
	"context"
	"sync"

	"github.com/kspdigital/sociallog-cli/internal/models"
)

// typeCache is an explicitly owned process-wide cache for the post-type
// vocabulary: get-or-fetch plus invalidate, nothing else. A failed fetch is
// not cached, so the next call retries.
type typeCache struct {
	mu     sync.Mutex
	types  []models.PostTypeInfo
	loaded bool
}

func (c *typeCache) GetOrFetch(ctx context.Context, fetch func(ctx context.Context) ([]models.PostTypeInfo, error)) ([]models.PostTypeInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.types, nil
	}

	types, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.types = types
	c.loaded = true
	return c.types, nil
}

func (c *typeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types = nil
	c.loaded = false
}
