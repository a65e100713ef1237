package auth

import (
	"context"

	"github.com/amatveev/feedhub/internal/model"
)

type ctxKey string

const authResultKey ctxKey = "fh.authResult"

// WithResult stores the per-request authentication outcome in context.
func WithResult(ctx context.Context, res model.AuthResult) context.Context {
	return context.WithValue(ctx, authResultKey, res)
}

// ResultFromCtx fetches the authentication outcome. A request that never
// passed through the resolver reads as unauthenticated.
func ResultFromCtx(ctx context.Context) model.AuthResult {
	v := ctx.Value(authResultKey)
	if v == nil {
		return model.AuthResult{}
	}
	res, ok := v.(model.AuthResult)
	if !ok {
		return model.AuthResult{}
	}
	return res
}
