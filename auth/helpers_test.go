package auth_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jrsteele09/go-rider-auth/auth"
)

const (
	testClientID    = "test-client-1"
	testRedirectURI = "http://127.0.0.1:8910/callback"
	testRequestCode = 42
	testSDKVersion  = "0.10.0"
	testVerifier    = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testChallenge   = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// scriptedSurface replays navigations for every Open. When dismiss is set
// the stream is closed after the script, otherwise it stays open until the
// flow gives up.
type scriptedSurface struct {
	mu          sync.Mutex
	navigations []auth.Navigation
	dismiss     bool
	openErr     error
	opened      chan string
}

func newScriptedSurface(dismiss bool, navigations ...auth.Navigation) *scriptedSurface {
	return &scriptedSurface{navigations: navigations, dismiss: dismiss, opened: make(chan string, 8)}
}

func (s *scriptedSurface) Open(_ context.Context, authURL string) (<-chan auth.Navigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened <- authURL
	if s.openErr != nil {
		return nil, s.openErr
	}
	ch := make(chan auth.Navigation, len(s.navigations))
	for _, n := range s.navigations {
		ch <- n
	}
	if s.dismiss {
		close(ch)
	}
	return ch, nil
}

func nav(url string) auth.Navigation {
	return auth.Navigation{URL: url}
}

var errNetworkDown = errors.New("net::ERR_INTERNET_DISCONNECTED")
