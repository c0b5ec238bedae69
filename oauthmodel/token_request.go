package oauthmodel

// TokenRequest holds what the client sends to the token endpoint when
// trading an authorization code for an access token.
type TokenRequest struct {
	// Code is the authorization code taken from the redirect query.
	// Usage: exchanged once, then invalid
	Code string

	// CodeVerifier is the PKCE secret that produced the code_challenge.
	// Example: "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	CodeVerifier string

	// RedirectURI must repeat the value used in the authorization request.
	RedirectURI string
}
