package sessions

import (
	"time"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/scope"
)

// LoginSession correlates a caller's request code with one pending login
// attempt. It lives from StartLogin until the matching result is dispatched.
type LoginSession struct {
	ID           string                  // Correlation ID (UUID)
	RequestCode  int                     // Caller-issued request code
	Scopes       scope.Set               // Scopes requested for this attempt
	ResponseType oauthmodel.ResponseType // token or code
	CodeVerifier string                  // PKCE verifier, code flow only
	CreatedAt    time.Time               // When the attempt started
	ExpiresAt    time.Time               // When an unanswered attempt is dropped
}

// Expired reports whether the session is past ExpiresAt at now.
func (s *LoginSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *LoginSession) clone() *LoginSession {
	c := *s
	c.Scopes = scope.NewSet(s.Scopes.Slice()...)
	return &c
}
