// Package service contains the orchestration layer: account operations and
// feed operations sequencing resolver result, guard, storage and broadcast.
package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/amatveev/feedhub/internal/auth"
	"github.com/amatveev/feedhub/internal/errs"
	"github.com/amatveev/feedhub/internal/model"
	"github.com/amatveev/feedhub/internal/repository"
	"github.com/amatveev/feedhub/internal/token"
)

const (
	bcryptCost    = 12
	defaultStatus = "I am new!"
)

// AccountService defines signup, login and status operations.
type AccountService interface {
	// Signup creates a new user with a hashed password.
	Signup(ctx context.Context, email, name, password string) (uuid.UUID, error)
	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, email, password string) (tok string, userID uuid.UUID, expiresAt time.Time, err error)
	// GetStatus returns the caller's own status line.
	GetStatus(ctx context.Context, res model.AuthResult) (string, error)
	// UpdateStatus rewrites the caller's own status line.
	UpdateStatus(ctx context.Context, res model.AuthResult, status string) error
}

type AccountServiceImpl struct {
	users repository.UserRepository
	codec *token.Codec
}

// NewAccountService constructs AccountService with required dependencies.
func NewAccountService(users repository.UserRepository, codec *token.Codec) *AccountServiceImpl {
	return &AccountServiceImpl{users: users, codec: codec}
}

// Signup validates input, hashes the password and stores the new user.
// A taken e-mail surfaces as a validation failure, not a conflict.
func (s *AccountServiceImpl) Signup(ctx context.Context, email, name, password string) (uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	var fields []errs.FieldError
	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, errs.FieldError{Message: "Please enter a valid email."})
	}
	if len(password) < 5 {
		fields = append(fields, errs.FieldError{Message: "Password too short."})
	}
	if name == "" {
		fields = append(fields, errs.FieldError{Message: "Name must not be empty."})
	}
	if len(fields) > 0 {
		return uuid.Nil, errs.Validation("Validation failed, entered data is incorrect", fields...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return uuid.Nil, err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	u := &model.User{
		ID:      uid,
		Email:   email,
		Name:    name,
		PwdHash: hash,
		Status:  defaultStatus,
		PostIDs: []uuid.UUID{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return uuid.Nil, errs.Validation("Validation failed, entered data is incorrect",
				errs.FieldError{Message: "E-Mail address already exists!"})
		}
		return uuid.Nil, err
	}
	return uid, nil
}

// Login authenticates by e-mail and password. Unknown user and wrong
// password are indistinguishable to the caller.
func (s *AccountServiceImpl) Login(ctx context.Context, email, password string) (string, uuid.UUID, time.Time, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", uuid.Nil, time.Time{}, errs.Unauthenticated("wrong email or password")
		}
		return "", uuid.Nil, time.Time{}, err
	}
	if bcrypt.CompareHashAndPassword(u.PwdHash, []byte(password)) != nil {
		return "", uuid.Nil, time.Time{}, errs.Unauthenticated("wrong email or password")
	}

	tok, exp, err := s.codec.Issue(model.Identity{UserID: u.ID, Email: u.Email})
	if err != nil {
		return "", uuid.Nil, time.Time{}, err
	}
	return tok, u.ID, exp, nil
}

// GetStatus loads the acting user's status.
func (s *AccountServiceImpl) GetStatus(ctx context.Context, res model.AuthResult) (string, error) {
	userID, err := auth.RequireAuthenticated(res)
	if err != nil {
		return "", err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.NotFound("user not found")
		}
		return "", err
	}
	return u.Status, nil
}

// UpdateStatus writes the acting user's status; only the caller's own row
// can ever be touched.
func (s *AccountServiceImpl) UpdateStatus(ctx context.Context, res model.AuthResult, status string) error {
	userID, err := auth.RequireAuthenticated(res)
	if err != nil {
		return err
	}
	if strings.TrimSpace(status) == "" {
		return errs.Validation("Validation failed, entered data is incorrect",
			errs.FieldError{Message: "Status must not be empty."})
	}
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound("user not found")
		}
		return err
	}
	return nil
}
