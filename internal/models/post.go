// Package models defines client-side data models used by the sociallog CLI.
package models

import "time"

// PostStatus values used by the backend for soft deletion.
const (
	PostStatusActive  = "ACTIVE"
	PostStatusDeleted = "DELETED"
)

// Post is one logged social-media-posting record.
//
// Exactly one of ImageData / ImageFileID is authoritative for display:
// ImageData holds an inline data URI, ImageFileID an opaque remote file
// reference lazily resolved to an inline payload. Both may be empty.
type Post struct {
	// ID is a unique identifier generated by the client at creation time
	// from an epoch-milliseconds timestamp.
	ID string `json:"id"`

	// ImageData is an inline, displayable image payload (data URI), if any.
	ImageData string `json:"imageData,omitempty"`

	// ImageFileID is an opaque reference to a remotely stored image.
	ImageFileID string `json:"imageFileId,omitempty"`

	// Description is the free-text caption. Required and non-empty.
	Description string `json:"description"`

	// Tags is a free-text, space-delimited tag string.
	Tags string `json:"tags"`

	// PostType is a categorical label from the server-defined vocabulary.
	PostType string `json:"postType,omitempty"`

	// PostURL is an optional link to the published post.
	PostURL string `json:"postUrl,omitempty"`

	// Timestamp is the creation time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	// CreatedBy is the creating user's internal employee code.
	CreatedBy string `json:"createdBy,omitempty"`

	// CreatedByEmail is the creating user's email.
	CreatedByEmail string `json:"createdByEmail,omitempty"`
}

// Time returns the creation time in the local time zone. All date bucketing
// uses local calendar boundaries, not UTC.
func (p Post) Time() time.Time {
	return time.UnixMilli(p.Timestamp).In(time.Local)
}

// PostTypeInfo is read-only reference data: a categorical label from the
// remote vocabulary, fetched once and cached for the process lifetime.
type PostTypeInfo struct {
	ID           string `json:"type_id"`
	Name         string `json:"type_name"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}
