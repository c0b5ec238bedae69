package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/rs/zerolog/log"
)

// Navigation is one page load reported by a Surface. Err is set when the
// page failed to load.
type Navigation struct {
	URL string
	Err error
}

// Surface is the user agent that shows the authorization page: a browser,
// a web view or a companion app. Open starts loading authURL and returns
// the stream of navigations. The stream is closed when the rider dismisses
// the surface.
type Surface interface {
	Open(ctx context.Context, authURL string) (<-chan Navigation, error)
}

// OAuthFlow watches a surface's navigations until one of them settles the
// login.
type OAuthFlow struct {
	RedirectURI  string
	ResponseType oauthmodel.ResponseType
	nowFunc      func() time.Time
}

// NewOAuthFlow returns a flow for redirectURI.
func NewOAuthFlow(redirectURI string, responseType oauthmodel.ResponseType, now func() time.Time) *OAuthFlow {
	if now == nil {
		now = time.Now
	}
	return &OAuthFlow{RedirectURI: redirectURI, ResponseType: responseType, nowFunc: now}
}

// Run opens authURL on surface and blocks until the login is settled, the
// surface is dismissed or ctx is done.
func (f *OAuthFlow) Run(ctx context.Context, surface Surface, authURL string) Classification {
	if strings.TrimSpace(f.RedirectURI) == "" {
		return failed(oauthmodel.InvalidRedirectURI)
	}
	navigations, err := surface.Open(ctx, authURL)
	if err != nil {
		log.Err(err).Msg("surface failed to open authorization page")
		return failed(oauthmodel.ConnectivityIssue)
	}
	for {
		select {
		case <-ctx.Done():
			return cancelled()
		case nav, ok := <-navigations:
			if !ok {
				return cancelled()
			}
			if nav.Err != nil {
				log.Err(nav.Err).Str("url", nav.URL).Msg("page load failed")
				return failed(oauthmodel.ConnectivityIssue)
			}
			if c, done := f.Classify(nav.URL); done {
				return c
			}
		}
	}
}

// Classify decides whether url ends the flow. URLs that neither start with
// the redirect URI nor look like an error page are left to load normally.
func (f *OAuthFlow) Classify(url string) (Classification, bool) {
	if strings.HasPrefix(url, f.RedirectURI) {
		if f.ResponseType == oauthmodel.CodeResponseType {
			return ParseCodeRedirect(url), true
		}
		return ParseRedirect(url, f.nowFunc()), true
	}
	// TODO: scope this to the redirect host once the server reports
	// redirect mismatches with a structured error.
	if strings.Contains(url, "errors") {
		return failed(oauthmodel.MismatchingRedirectURI), true
	}
	return Classification{}, false
}
