// Package session binds browser sessions to authenticated user ids.
//
// A session is created at login and destroyed at logout. The browser holds
// only a signed token naming the session id; the binding itself lives in a
// Store, so logging out revokes the token server-side.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is a server-side binding of a session id to a user id.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions.
type Store interface {
	// Create opens a new session for userID that expires after ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error)
	// Get returns the live session with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Destroy removes the session. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, id string) error
}
