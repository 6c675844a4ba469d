// Package images resolves remote image file references to inline data URIs
// on demand, with a per-post cache so nothing is fetched twice.
package images

import (
	"context"
	"sync"

	"github.com/kspdigital/sociallog-cli/internal/logging"
	"github.com/kspdigital/sociallog-cli/internal/models"
)

// Fetcher is the single remote operation the loader needs. api.Client
// satisfies it.
type Fetcher interface {
	FetchImage(ctx context.Context, fileID string) (string, error)
}

// Loader caches resolved images keyed by post identifier. Cache updates are
// a monotonic union: entries are only ever added, never replaced or evicted,
// so out-of-order completion across concurrent fetches is safe.
type Loader struct {
	fetcher Fetcher
	log     logging.Logger

	mu     sync.Mutex
	images map[string]string
}

func NewLoader(fetcher Fetcher, log logging.Logger) *Loader {
	return &Loader{fetcher: fetcher, log: log, images: make(map[string]string)}
}

// LoadMissing fetches, concurrently, every post that carries a file
// reference and is absent from the cache. A failed fetch leaves that single
// post without an image and does not block the others. Returns the number of
// images added to the cache.
func (l *Loader) LoadMissing(ctx context.Context, posts []models.Post) int {
	var targets []models.Post
	l.mu.Lock()
	for _, p := range posts {
		if p.ImageFileID == "" {
			continue
		}
		if _, ok := l.images[p.ID]; ok {
			continue
		}
		targets = append(targets, p)
	}
	l.mu.Unlock()

	if len(targets) == 0 {
		return 0
	}

	var wg sync.WaitGroup
	added := 0

	for _, p := range targets {
		wg.Add(1)
		go func(post models.Post) {
			defer wg.Done()
			uri, err := l.fetcher.FetchImage(ctx, post.ImageFileID)
			if err != nil {
				l.log.Error(ctx, "failed to load image", "post_id", post.ID, "error", err)
				return
			}
			l.mu.Lock()
			if _, ok := l.images[post.ID]; !ok {
				l.images[post.ID] = uri
				added++
			}
			l.mu.Unlock()
		}(p)
	}

	wg.Wait()
	return added
}

// Get returns the cached image for a post, if resolved.
func (l *Loader) Get(postID string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	uri, ok := l.images[postID]
	return uri, ok
}

// Len reports how many images are cached.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.images)
}

// Clear drops the whole cache; posts will be refetched on the next pass.
func (l *Loader) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.images = make(map[string]string)
}
