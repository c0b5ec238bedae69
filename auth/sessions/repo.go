package sessions

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("login session not found")
	ErrInvalidSession  = errors.New("login session requires an id")
)

// Repo stores pending login sessions.
type Repo interface {
	// Upsert creates or replaces a session
	Upsert(session *LoginSession) error

	// Get retrieves a session by ID
	Get(sessionID string) (*LoginSession, error)

	// Delete removes a session by ID
	Delete(sessionID string) error

	// DeleteExpiredSessions removes sessions that expired before expiryTime
	DeleteExpiredSessions(expiryTime time.Time) error
}
