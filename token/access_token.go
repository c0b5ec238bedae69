package token

import (
	"time"

	"github.com/jrsteele09/go-rider-auth/scope"
)

// Fragment and storage parameter names.
const (
	KeyToken          = "access_token"
	KeyExpirationTime = "expires_in"
	KeyScopes         = "scope"
)

// AccessToken is an opaque bearer credential with an absolute expiry and
// the scopes it was granted. Values are never mutated once built.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
	Scopes    scope.Set
}

// New builds an AccessToken, copying the scope set.
func New(tokenString string, expiresAt time.Time, scopes scope.Set) *AccessToken {
	copied := scope.NewSet()
	for sc := range scopes {
		copied.Add(sc)
	}
	return &AccessToken{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		Scopes:    copied,
	}
}

// Expired reports whether the token is past its expiry at now.
func (t *AccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// ExpiresIn returns the remaining lifetime at now, floored at zero.
func (t *AccessToken) ExpiresIn(now time.Time) time.Duration {
	if d := t.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Equal compares token string, expiry to the millisecond and scopes.
func (t *AccessToken) Equal(other *AccessToken) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Token == other.Token &&
		t.ExpiresAt.UnixMilli() == other.ExpiresAt.UnixMilli() &&
		t.Scopes.Equal(other.Scopes)
}
