package session

import (
	"context"
	"errors"
	"time"
)

// TTL is the absolute session lifetime. Expiry is fixed from login, not
// rolling: a session is only refreshed by re-authenticating.
const TTL = 24 * time.Hour

// CookieName is the cookie carrying the opaque session token.
const CookieName = "session_id"

// ErrNoSession is returned by Resolve when the token is absent, unknown or
// past its expiry.
var ErrNoSession = errors.New("no active session")

// Identity is the small authenticated-identity record a session holds. It
// references the user by id value; it never aliases the stored User document.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Store issues and resolves opaque session tokens. Implementations must be
// safe for concurrent use by request handlers.
type Store interface {
	// Create stores the identity under a new opaque token and returns it.
	Create(ctx context.Context, identity Identity) (string, error)
	// Resolve returns the identity bound to token, or ErrNoSession.
	Resolve(ctx context.Context, token string) (*Identity, error)
	// Destroy removes the session. Destroying an absent token is a no-op.
	Destroy(ctx context.Context, token string) error
	// Rename updates the display name on a live session, preserving its
	// expiry. A missing session is a no-op.
	Rename(ctx context.Context, token, name string) error
}
