package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/amatveev/feedhub/internal/model"
)

// UserRepository provides account lookup and mutation.
type UserRepository interface {
	// Create inserts a new user. A taken email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateStatus rewrites the user's status line.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
