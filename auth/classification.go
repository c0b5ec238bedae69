package auth

import (
	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/token"
)

// Outcome is how a login attempt ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeCancelled
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "error"
	}
}

// Classification is the verdict on a single redirect. Token is set for an
// implicit-grant success and Code for a code-flow success. Err is set only
// when Outcome is OutcomeError.
type Classification struct {
	Outcome Outcome
	Token   *token.AccessToken
	Code    string
	Err     oauthmodel.AuthenticationError
}

func succeeded(tok *token.AccessToken) Classification {
	return Classification{Outcome: OutcomeSuccess, Token: tok}
}

func failed(err oauthmodel.AuthenticationError) Classification {
	return Classification{Outcome: OutcomeError, Err: err}
}

func cancelled() Classification {
	return Classification{Outcome: OutcomeCancelled}
}

// Result is what Login resolves with.
type Result struct {
	Outcome Outcome
	Token   *token.AccessToken
	Err     oauthmodel.AuthenticationError
}
