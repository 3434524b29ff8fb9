package middleware

import (
	"context"

	"github.com/rajasharmaa/dttt/internal/session"
)

// ContextKey is a private type for context keys to avoid collisions.
type ContextKey string

const (
	// SessionCtxKey holds the resolved session identity.
	SessionCtxKey = ContextKey("session")
	// TokenCtxKey holds the raw session token from the cookie.
	TokenCtxKey = ContextKey("session_token")
)

// SessionFromContext returns the authenticated identity attached by the
// session resolver, if any.
func SessionFromContext(ctx context.Context) (*session.Identity, bool) {
	identity, ok := ctx.Value(SessionCtxKey).(*session.Identity)
	return identity, ok
}

// TokenFromContext returns the raw session token attached by the session
// resolver, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok
}
