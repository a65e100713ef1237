// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/amatveev/feedhub/internal/model"
)

// PostRepository is the feed store gateway for posts.
type PostRepository interface {
	// GetByID loads a single post.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// ListPage returns one page ordered by creation time descending.
	ListPage(ctx context.Context, skip, limit int) ([]model.Post, error)

	// Count returns the total number of posts.
	Count(ctx context.Context) (int, error)

	// CreateWithBackref inserts the post and appends its ID to the
	// creator's post list in one transaction.
	CreateWithBackref(ctx context.Context, p *model.Post) error

	// Update rewrites title, content, image reference and updated-at.
	Update(ctx context.Context, p *model.Post) error

	// DeleteWithBackref removes the post and drops its ID from the
	// creator's post list in one transaction.
	DeleteWithBackref(ctx context.Context, id, creatorID uuid.UUID) error
}
