package auth

//go:generate mockgen -source=callback.go -destination=mocks/mocks.go -package=mocks LoginCallback

import (
	"sync"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/token"
)

// LoginCallback receives exactly one of its methods per completed login.
type LoginCallback interface {
	OnLoginCancel()
	OnLoginError(err oauthmodel.AuthenticationError)
	OnLoginSuccess(tok *token.AccessToken)
}

// futureCallback adapts a LoginCallback onto a single-use result channel.
type futureCallback struct {
	once    sync.Once
	results chan Result
}

func newFutureCallback() *futureCallback {
	return &futureCallback{results: make(chan Result, 1)}
}

func (f *futureCallback) resolve(r Result) {
	f.once.Do(func() {
		f.results <- r
		close(f.results)
	})
}

func (f *futureCallback) OnLoginCancel() {
	f.resolve(Result{Outcome: OutcomeCancelled})
}

func (f *futureCallback) OnLoginError(err oauthmodel.AuthenticationError) {
	f.resolve(Result{Outcome: OutcomeError, Err: err})
}

func (f *futureCallback) OnLoginSuccess(tok *token.AccessToken) {
	f.resolve(Result{Outcome: OutcomeSuccess, Token: tok})
}
