package oauthmodel

import (
	"errors"
	"strings"
)

// AuthenticationError is the closed set of reasons a login can fail. The
// lower-case form of each value is what the authorization server sends in
// the error query parameter.
type AuthenticationError string

const (
	ConnectivityIssue      AuthenticationError = "CONNECTIVITY_ISSUE"
	InvalidClientID        AuthenticationError = "INVALID_CLIENT_ID"
	InvalidParameters      AuthenticationError = "INVALID_PARAMETERS"
	InvalidRedirectURI     AuthenticationError = "INVALID_REDIRECT_URI"
	InvalidResponse        AuthenticationError = "INVALID_RESPONSE"
	InvalidScope           AuthenticationError = "INVALID_SCOPE"
	MismatchingRedirectURI AuthenticationError = "MISMATCHING_REDIRECT_URI"
	ServerError            AuthenticationError = "SERVER_ERROR"
	TemporarilyUnavailable AuthenticationError = "TEMPORARILY_UNAVAILABLE"
	Unknown                AuthenticationError = "UNKNOWN"
)

var authenticationErrors = []AuthenticationError{
	ConnectivityIssue,
	InvalidClientID,
	InvalidParameters,
	InvalidRedirectURI,
	InvalidResponse,
	InvalidScope,
	MismatchingRedirectURI,
	ServerError,
	TemporarilyUnavailable,
	Unknown,
}

var ErrUnknownAuthenticationError = errors.New("unknown authentication error")

// AuthenticationErrors lists every member of the taxonomy.
func AuthenticationErrors() []AuthenticationError {
	out := make([]AuthenticationError, len(authenticationErrors))
	copy(out, authenticationErrors)
	return out
}

// FromString maps a server error name onto the taxonomy, ignoring case.
func FromString(name string) (AuthenticationError, error) {
	candidate := AuthenticationError(strings.ToUpper(strings.TrimSpace(name)))
	for _, e := range authenticationErrors {
		if e == candidate {
			return e, nil
		}
	}
	return "", ErrUnknownAuthenticationError
}

// FromStringOr is FromString with a fallback for unrecognised names.
func FromStringOr(name string, fallback AuthenticationError) AuthenticationError {
	e, err := FromString(name)
	if err != nil {
		return fallback
	}
	return e
}

// String returns the lower-case wire name, e.g. "invalid_scope".
func (e AuthenticationError) String() string {
	return strings.ToLower(string(e))
}

func (e AuthenticationError) Error() string {
	return "authentication error: " + e.String()
}

// AsAuthenticationError extracts an AuthenticationError from err's chain.
func AsAuthenticationError(err error) (AuthenticationError, bool) {
	var authErr AuthenticationError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return "", false
}
