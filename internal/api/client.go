package api

import (
	"context"

	"github.com/kspdigital/sociallog-cli/internal/models"
)

// Client is the API contract against the posting backend and the identity
// endpoint. One implementation exists (HTTPClient); tests use fakes.
type Client interface {
	// ListPosts returns all non-deleted posts of every user. The viewer
	// filter for "my posts" views belongs to the store, not the client.
	ListPosts(ctx context.Context) ([]models.Post, error)

	// CreatePost submits a new post and returns the backend-assigned id.
	CreatePost(ctx context.Context, post models.Post, userEmail, employeeCode string) (string, error)

	// DeletePost soft-deletes a post by identifier.
	DeletePost(ctx context.Context, postID, userEmail string) error

	// ListPostTypes returns the active post-type vocabulary sorted by
	// display order. The result is cached for the process lifetime.
	ListPostTypes(ctx context.Context) ([]models.PostTypeInfo, error)

	// InvalidatePostTypes drops the post-type cache so the next call
	// refetches.
	InvalidatePostTypes()

	// ListEmployees returns the employee-code to nickname directory.
	// Rows missing either field are skipped.
	ListEmployees(ctx context.Context) (map[string]string, error)

	// FetchImage resolves an opaque remote file reference to an inline
	// displayable data URI.
	FetchImage(ctx context.Context, fileID string) (string, error)

	// VerifyIdentity exchanges an identity credential for a normalized
	// user session via the separate identity endpoint.
	VerifyIdentity(ctx context.Context, credential string) (models.Session, error)
}
