// Package token implements the credential codec: signed, time-bounded
// bearer tokens binding a user identity to a session.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/amatveev/feedhub/internal/model"
)

// Verification failure variants. Verify never panics on garbage input;
// it always returns one of these (or a wrapped parse error for anything
// else malformed).
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// DefaultTTL is the credential validity window.
const DefaultTTL = time.Hour

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 credentials with a shared secret.
// Both operations are pure: no storage lookup, no side effects.
type Codec struct {
	signKey []byte
	ttl     time.Duration
}

// NewCodec constructs a codec. A non-positive ttl falls back to DefaultTTL.
func NewCodec(signKey []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{signKey: signKey, ttl: ttl}
}

// Issue encodes the identity plus issued-at and expiry into a signed token.
func (c *Codec) Issue(id model.Identity) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(c.ttl)
	cl := claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := tok.SignedString(c.signKey)
	return signed, exp, err
}

// Verify checks signature and expiry and returns the embedded identity.
// The identity is trusted only when the signature verifies and the token
// has not expired.
func (c *Codec) Verify(raw string) (model.Identity, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignatureInvalid
		}
		return c.signKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return model.Identity{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrSignatureInvalid):
			return model.Identity{}, ErrSignatureInvalid
		default:
			return model.Identity{}, ErrMalformed
		}
	}
	if !parsed.Valid {
		return model.Identity{}, ErrSignatureInvalid
	}
	userID, err := uuid.FromString(cl.Subject)
	if err != nil {
		return model.Identity{}, ErrMalformed
	}
	return model.Identity{UserID: userID, Email: cl.Email}, nil
}
