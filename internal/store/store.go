// Package store owns the client-side post list: an in-memory slice mirrored
// to the SQLite state cache, reconciled with the remote list on load/login
// and updated optimistically after confirmed mutations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kspdigital/sociallog-cli/internal/dbx"
	"github.com/kspdigital/sociallog-cli/internal/logging"
	"github.com/kspdigital/sociallog-cli/internal/models"
	"github.com/kspdigital/sociallog-cli/internal/store/statecache"
)

type Store struct {
	db    *sql.DB
	cache statecache.Repository
	log   logging.Logger

	posts   []models.Post
	session *models.Session
}

func New(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, cache: statecache.NewSQLiteRepository(db), log: log}
}

// LoadCached populates memory from the local cache, best effort. Corrupt
// values are discarded and logged, never fatal: the cache is only a
// pre-paint placeholder until the next remote sync.
func (s *Store) LoadCached(ctx context.Context) {
	if raw, err := s.cache.Get(ctx, statecache.KeyPosts); err != nil {
		s.log.Error(ctx, "reading cached posts", "error", err)
	} else if raw != nil {
		var posts []models.Post
		if err := json.Unmarshal(raw, &posts); err != nil {
			s.log.Warn(ctx, "discarding corrupt cached post list", "error", err)
		} else {
			s.posts = posts
		}
	}

	if raw, err := s.cache.Get(ctx, statecache.KeySession); err != nil {
		s.log.Error(ctx, "reading cached session", "error", err)
	} else if raw != nil {
		var session models.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			s.log.Warn(ctx, "discarding corrupt cached session", "error", err)
		} else {
			s.session = &session
		}
	}
}

// ReplaceAll swaps in the remote post list wholesale. The remote store is
// authoritative on load; whatever was in memory or cache is overwritten.
func (s *Store) ReplaceAll(ctx context.Context, posts []models.Post) error {
	s.posts = posts
	return s.persistPosts(ctx)
}

// Prepend inserts a freshly created post at the head of the list and
// rewrites the cache. No re-fetch from remote happens after a mutation.
func (s *Store) Prepend(ctx context.Context, post models.Post) error {
	s.posts = append([]models.Post{post}, s.posts...)
	return s.persistPosts(ctx)
}

// RemoveByID drops the post with the given identifier, if present, and
// rewrites the cache. Reports whether anything was removed.
func (s *Store) RemoveByID(ctx context.Context, id string) (bool, error) {
	kept := s.posts[:0:0]
	removed := false
	for _, p := range s.posts {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, nil
	}
	s.posts = kept
	return true, s.persistPosts(ctx)
}

func (s *Store) persistPosts(ctx context.Context) error {
	raw, err := json.Marshal(s.posts)
	if err != nil {
		return fmt.Errorf("encoding post list: %w", err)
	}
	return s.cache.Set(ctx, statecache.KeyPosts, raw)
}

// Posts returns a copy of the full in-memory list, newest first.
func (s *Store) Posts() []models.Post {
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// PostsByEmail returns the viewer's posts ("my posts" view).
func (s *Store) PostsByEmail(email string) []models.Post {
	var out []models.Post
	for _, p := range s.posts {
		if p.CreatedByEmail == email {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Session() *models.Session {
	return s.session
}

func (s *Store) SetSession(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.cache.Set(ctx, statecache.KeySession, raw); err != nil {
		return err
	}
	s.session = &session
	return nil
}

// ClearSession removes the identity and its cache entry. The post list is
// left as-is in memory; the next login triggers a fresh sync.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.cache.Delete(ctx, statecache.KeySession); err != nil {
		return err
	}
	s.session = nil
	return nil
}

// Wipe atomically deletes both cache keys and resets memory.
func (s *Store) Wipe(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := statecache.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, statecache.KeyPosts); err != nil {
			return err
		}
		return repo.Delete(ctx, statecache.KeySession)
	})
	if err != nil {
		return err
	}
	s.posts = nil
	s.session = nil
	return nil
}
