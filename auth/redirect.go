package auth

import (
	"net/url"
	"time"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/token"
)

const (
	errorParam = "error"
	codeParam  = "code"
)

// ParseRedirect classifies an implicit-grant redirect. An error query
// parameter wins over anything in the fragment.
func ParseRedirect(redirect string, now time.Time) Classification {
	u, err := url.Parse(redirect)
	if err != nil {
		return failed(oauthmodel.InvalidResponse)
	}
	if authErr, ok := queryError(u); ok {
		return failed(authErr)
	}
	tok, err := token.DecodeFromRedirect(redirect, now)
	if err != nil {
		return failed(oauthmodel.InvalidResponse)
	}
	return succeeded(tok)
}

// ParseCodeRedirect classifies an authorization-code redirect.
func ParseCodeRedirect(redirect string) Classification {
	u, err := url.Parse(redirect)
	if err != nil {
		return failed(oauthmodel.InvalidResponse)
	}
	if authErr, ok := queryError(u); ok {
		return failed(authErr)
	}
	code := u.Query().Get(codeParam)
	if code == "" {
		return failed(oauthmodel.InvalidResponse)
	}
	return Classification{Outcome: OutcomeSuccess, Code: code}
}

func queryError(u *url.URL) (oauthmodel.AuthenticationError, bool) {
	query := u.Query()
	if !query.Has(errorParam) {
		return "", false
	}
	return oauthmodel.FromStringOr(query.Get(errorParam), oauthmodel.InvalidResponse), true
}
