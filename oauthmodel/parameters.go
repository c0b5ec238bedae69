package oauthmodel

import (
	"strings"

	"github.com/jrsteele09/go-rider-auth/scope"
)

// AuthorizationParameters holds everything needed to build a request to the
// authorization endpoint.
type AuthorizationParameters struct {
	// ClientID identifies the registered app.
	// Required: Yes
	// Example: "Xa9bjdTW4iQ2KcVmR3sA7"
	ClientID string

	// RedirectURI is where the authorization server sends the rider back to.
	// Required: Yes
	// Example: "http://127.0.0.1:8910/callback"
	// Security: must match one registered on the developer dashboard
	RedirectURI string

	// ResponseType chooses between the implicit and the PKCE code flow.
	// Required: No (defaults to "token")
	ResponseType ResponseType

	// Scopes are the catalogued permissions requested.
	// Required: at least one scope or custom scope
	Scopes scope.Set

	// CustomScopes are free-form scope names not in the catalog.
	// Example: []string{"partner.accounts"}
	CustomScopes []string

	// Region picks the login domain.
	// Required: No (defaults to WORLD)
	Region Region

	// CodeChallenge is BASE64URL(SHA256(code_verifier)).
	// Required: Yes for the code flow
	CodeChallenge string

	// SDKVersion is reported to the universal authorize endpoint.
	// Example: "0.10.0"
	SDKVersion string

	// RequestURI refers to a pushed authorization request, if one was made.
	// Required: No
	RequestURI string
}

// Validate checks the parameters locally before any network activity.
func (p *AuthorizationParameters) Validate() error {
	if strings.TrimSpace(p.RedirectURI) == "" {
		return InvalidRedirectURI
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return InvalidClientID
	}
	if len(p.Scopes) == 0 && !hasCustomScope(p.CustomScopes) {
		return InvalidScope
	}
	if !responseTypeValid(p.ResponseType) {
		return InvalidParameters
	}
	if p.ResponseType == CodeResponseType && strings.TrimSpace(p.CodeChallenge) == "" {
		return InvalidParameters
	}
	return nil
}

// ScopeString is the value sent in the scope query parameter.
func (p *AuthorizationParameters) ScopeString() string {
	return scope.Merge(p.Scopes, p.CustomScopes)
}

func hasCustomScope(custom []string) bool {
	for _, c := range custom {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

func responseTypeValid(responseType ResponseType) bool {
	switch responseType {
	case "", TokenResponseType, CodeResponseType:
		return true
	}
	return false
}
