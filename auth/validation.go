package auth

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"golang.org/x/oauth2"
)

// Validator holds the local checks run before a login touches the network.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRedirectURI requires an absolute URI with a scheme. Custom app
// schemes are allowed.
func (v *Validator) ValidateRedirectURI(redirectURI string) error {
	if strings.TrimSpace(redirectURI) == "" {
		return oauthmodel.InvalidRedirectURI
	}
	u, err := url.Parse(redirectURI)
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("redirect uri %q must be absolute: %w", redirectURI, oauthmodel.InvalidRedirectURI)
	}
	if u.Fragment != "" {
		return fmt.Errorf("redirect uri must not carry a fragment: %w", oauthmodel.InvalidRedirectURI)
	}
	return nil
}

// ValidatePKCE checks an RFC 7636 verifier and that challenge is its S256
// transform.
func (v *Validator) ValidatePKCE(verifier, challenge string) error {
	if len(verifier) < 43 || len(verifier) > 128 {
		return fmt.Errorf("code_verifier must be between 43 and 128 characters: %w", oauthmodel.InvalidParameters)
	}
	if oauth2.S256ChallengeFromVerifier(verifier) != challenge {
		return fmt.Errorf("code_challenge does not match code_verifier: %w", oauthmodel.InvalidParameters)
	}
	return nil
}

// ValidateTokenRequest validates a code exchange request.
func (v *Validator) ValidateTokenRequest(req oauthmodel.TokenRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("authorization code is required: %w", oauthmodel.InvalidResponse)
	}
	if req.CodeVerifier != "" && (len(req.CodeVerifier) < 43 || len(req.CodeVerifier) > 128) {
		return fmt.Errorf("code_verifier must be between 43 and 128 characters: %w", oauthmodel.InvalidParameters)
	}
	return v.ValidateRedirectURI(req.RedirectURI)
}
