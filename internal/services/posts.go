package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kspdigital/sociallog-cli/internal/api"
	"github.com/kspdigital/sociallog-cli/internal/logging"
	"github.com/kspdigital/sociallog-cli/internal/models"
	"github.com/kspdigital/sociallog-cli/internal/stats"
	"github.com/kspdigital/sociallog-cli/internal/store"
)

// ErrEmptyDescription rejects a post draft without a caption.
var ErrEmptyDescription = errors.New("description must not be empty")

// PostDraft is user input for a new post before identity and timestamps are
// attached.
type PostDraft struct {
	// ImageData is an inline image as a data URI, or raw base64, or empty.
	ImageData   string
	Description string
	Tags        string
	PostType    string
	PostURL     string
}

// PostService orchestrates post operations between the remote client and the
// local store. Mutations update the store optimistically after the backend
// confirms; no re-fetch follows a mutation.
type PostService interface {
	// Sync replaces the local list wholesale with the remote one. On
	// failure the previous list stays in place.
	Sync(ctx context.Context) error

	// Create submits a draft and, on success, prepends the new post.
	Create(ctx context.Context, draft PostDraft) (models.Post, error)

	// Delete soft-deletes remotely and, on success, removes locally.
	Delete(ctx context.Context, id string) error

	// PostTypes returns the process-cached active type vocabulary.
	PostTypes(ctx context.Context) ([]models.PostTypeInfo, error)

	// RefreshPostTypes invalidates the vocabulary cache and refetches.
	RefreshPostTypes(ctx context.Context) ([]models.PostTypeInfo, error)

	// Employees returns the code→nickname directory. Failures degrade to an
	// empty directory (aggregations fall back to raw codes) and are logged.
	Employees(ctx context.Context) stats.Directory
}

type postService struct {
	client api.Client
	store  *store.Store
	log    logging.Logger
}

func NewPostService(client api.Client, st *store.Store, log logging.Logger) PostService {
	return &postService{client: client, store: st, log: log}
}

func (s *postService) Sync(ctx context.Context) error {
	posts, err := s.client.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("listing posts: %w", err)
	}
	return s.store.ReplaceAll(ctx, posts)
}

func (s *postService) Create(ctx context.Context, draft PostDraft) (models.Post, error) {
	session := s.store.Session()
	if session == nil {
		return models.Post{}, ErrNotLoggedIn
	}
	if strings.TrimSpace(draft.Description) == "" {
		return models.Post{}, ErrEmptyDescription
	}

	id, ms := newPostID()
	post := models.Post{
		ID:             id,
		ImageData:      draft.ImageData,
		Description:    draft.Description,
		Tags:           draft.Tags,
		PostType:       draft.PostType,
		PostURL:        draft.PostURL,
		Timestamp:      ms,
		CreatedBy:      session.EmployeeCode,
		CreatedByEmail: session.Email,
	}

	remoteID, err := s.client.CreatePost(ctx, post, session.Email, session.EmployeeCode)
	if err != nil {
		return models.Post{}, err
	}
	s.log.Debug(ctx, "post created", "local_id", post.ID, "remote_id", remoteID)

	// the optimistic copy keeps the client-generated id; the next full sync
	// picks up whatever the backend assigned
	if err := s.store.Prepend(ctx, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	session := s.store.Session()
	if session == nil {
		return ErrNotLoggedIn
	}

	if err := s.client.DeletePost(ctx, id, session.Email); err != nil {
		return err
	}

	if _, err := s.store.RemoveByID(ctx, id); err != nil {
		return err
	}
	return nil
}

func (s *postService) PostTypes(ctx context.Context) ([]models.PostTypeInfo, error) {
	return s.client.ListPostTypes(ctx)
}

func (s *postService) RefreshPostTypes(ctx context.Context) ([]models.PostTypeInfo, error) {
	s.client.InvalidatePostTypes()
	return s.client.ListPostTypes(ctx)
}

func (s *postService) Employees(ctx context.Context) stats.Directory {
	directory, err := s.client.ListEmployees(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load employee directory", "error", err)
		return stats.Directory{}
	}
	return stats.Directory(directory)
}

var (
	idMu   sync.Mutex
	lastID int64
)

// newPostID generates the client-side post identifier from the current
// epoch-milliseconds timestamp, bumped when two posts land on the same
// millisecond so ids stay strictly monotonic within the process.
func newPostID() (string, int64) {
	idMu.Lock()
	defer idMu.Unlock()

	ms := time.Now().UnixMilli()
	if ms <= lastID {
		ms = lastID + 1
	}
	lastID = ms
	return strconv.FormatInt(ms, 10), ms
}
