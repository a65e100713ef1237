// Package auth establishes per-request identity (resolver) and enforces it
// at the point of use (guard). The two phases are deliberately split:
// resolution is best-effort and never rejects a request; rejection happens
// only when a guarded operation demands authentication.
package auth

import (
	"strings"

	"github.com/amatveev/feedhub/internal/model"
	"github.com/amatveev/feedhub/internal/token"
)

// Resolver turns an optional bearer credential into an AuthResult.
type Resolver struct {
	codec *token.Codec
}

// NewResolver constructs a resolver over the given codec.
func NewResolver(codec *token.Codec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve inspects an Authorization header value. Rules, in order:
// absent header -> unauthenticated; present but failing verification for
// any reason -> unauthenticated (the failure is swallowed); valid ->
// authenticated with the embedded identity. Resolve never returns an error.
func (r *Resolver) Resolve(authorization string) model.AuthResult {
	if authorization == "" {
		return model.AuthResult{}
	}
	// "Bearer <token>": split on the first space; a missing token part
	// verifies as malformed and falls through to unauthenticated.
	_, raw, _ := strings.Cut(authorization, " ")
	id, err := r.codec.Verify(raw)
	if err != nil {
		return model.AuthResult{}
	}
	return model.AuthResult{Authenticated: true, UserID: id.UserID, Email: id.Email}
}
