package oauthmodel

import "strings"

// ResponseType represents the OAuth 2.0 response type requested from the
// authorization endpoint.
type ResponseType string

const (
	// TokenResponseType requests the implicit grant. The access token comes
	// back in the redirect fragment.
	TokenResponseType ResponseType = "token"

	// CodeResponseType requests an authorization code, which must then be
	// exchanged at the token endpoint together with the PKCE verifier.
	CodeResponseType ResponseType = "code"
)

// CodeMethodType is the PKCE challenge method. Only S256 is sent.
type CodeMethodType string

const CodeMethodTypeS256 CodeMethodType = "S256"

// Region selects which Uber domain the login endpoints are served from.
type Region string

const (
	RegionWorld Region = "WORLD"
	RegionChina Region = "CHINA"
)

// Domain returns the region's root domain.
func (r Region) Domain() string {
	if r == RegionChina {
		return "uber.com.cn"
	}
	return "uber.com"
}

// ParseRegion maps a configuration value onto a region, defaulting to WORLD.
func ParseRegion(value string) Region {
	if Region(strings.ToUpper(strings.TrimSpace(value))) == RegionChina {
		return RegionChina
	}
	return RegionWorld
}
