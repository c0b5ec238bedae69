package token

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/scope"
)

// maxExpiresIn is the largest expires_in, in seconds, that still fits a
// time.Duration.
const maxExpiresIn = int64(math.MaxInt64 / int64(time.Second))

// DecodeFromRedirect reads an access token out of an implicit-grant redirect
// fragment. The expiry is made absolute against now. Every failure is
// reported as oauthmodel.InvalidResponse.
func DecodeFromRedirect(redirect string, now time.Time) (*AccessToken, error) {
	u, err := url.Parse(redirect)
	if err != nil {
		return nil, oauthmodel.InvalidResponse
	}
	fragment := u.EscapedFragment()
	if fragment == "" {
		return nil, oauthmodel.InvalidResponse
	}
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return nil, oauthmodel.InvalidResponse
	}
	return decodeValues(values, now)
}

func decodeValues(values url.Values, now time.Time) (*AccessToken, error) {
	tokenString := values.Get(KeyToken)
	expiresIn := values.Get(KeyExpirationTime)
	scopes := values.Get(KeyScopes)
	if tokenString == "" || expiresIn == "" || strings.TrimSpace(scopes) == "" {
		return nil, oauthmodel.InvalidResponse
	}

	seconds, err := strconv.ParseInt(expiresIn, 10, 64)
	if err != nil || seconds > maxExpiresIn || seconds < -maxExpiresIn {
		return nil, oauthmodel.InvalidResponse
	}

	set, err := scope.Parse(scopes)
	if err != nil {
		return nil, oauthmodel.InvalidResponse
	}

	return New(tokenString, now.Add(time.Duration(seconds)*time.Second), set), nil
}

// EncodeScopes joins the scope names lower-cased with single spaces.
func EncodeScopes(scopes scope.Set) string {
	return scopes.Encode()
}
