package auth

import (
	"github.com/gofrs/uuid/v5"

	"github.com/amatveev/feedhub/internal/errs"
	"github.com/amatveev/feedhub/internal/model"
)

// RequireAuthenticated returns the acting user ID or a 401 error.
func RequireAuthenticated(res model.AuthResult) (uuid.UUID, error) {
	if !res.Authenticated {
		return uuid.Nil, errs.Unauthenticated("not authenticated")
	}
	return res.UserID, nil
}

// RequireOwnership requires authentication first, then that the acting user
// owns the resource. A mismatch between two valid users is 403, never 404:
// ownership failures stay distinguishable from missing resources, and the
// caller is expected to have done the existence check already.
func RequireOwnership(res model.AuthResult, ownerID uuid.UUID) error {
	userID, err := RequireAuthenticated(res)
	if err != nil {
		return err
	}
	if userID != ownerID {
		return errs.Forbidden("not authorized")
	}
	return nil
}
