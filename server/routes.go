package server

import (
	"net/http"

	"github.com/jrsteele09/go-rider-auth/auth"
	"github.com/rs/zerolog/log"
)

// Route path constants. The callback route is whatever path the redirect
// URI names.
const (
	RouteComplete = "/riderauth/complete"
	RouteDismiss  = "/riderauth/dismiss"
)

func (s *LoopbackSurface) initRoutes() {
	callbackPath := s.redirect.Path
	if callbackPath == "" {
		callbackPath = "/"
	}
	if callbackPath == "/" {
		callbackPath = "/{$}"
	}

	s.RegisterRouteHandler("GET "+callbackPath, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteComplete, ChainMiddleware(s.CompleteHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteDismiss, ChainMiddleware(s.DismissHandler(), s.HTMLMiddleWare()...))
}

// CallbackHandler receives the redirect. Query results (error or code) are
// visible to the server and published directly; an implicit-grant fragment
// never leaves the browser, so a relay page posts it back to RouteComplete.
func (s *LoopbackSurface) CallbackHandler() http.HandlerFunc {
	relay := mustParseTemplate("relay.html")
	done := mustParseTemplate("done.html")

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if !query.Has("error") && !query.Has("code") {
			renderPage(w, http.StatusOK, relay, pageData{CompletePath: RouteComplete, DismissPath: RouteDismiss})
			return
		}

		redirect := s.redirectURI + "?" + r.URL.RawQuery
		if err := s.publish(auth.Navigation{URL: redirect}); err != nil {
			log.Err(err).Msg("Callback: redirect arrived with no login waiting")
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		renderPage(w, http.StatusOK, done, pageData{Error: query.Get("error")})
	}
}

// CompleteHandler rebuilds the fragment redirect posted by the relay page.
func (s *LoopbackSurface) CompleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		redirect := s.redirectURI
		if fragment := r.PostFormValue("fragment"); fragment != "" {
			redirect += "#" + fragment
		}
		if err := s.publish(auth.Navigation{URL: redirect}); err != nil {
			log.Err(err).Msg("Complete: redirect arrived with no login waiting")
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DismissHandler is the user backing out of the page.
func (s *LoopbackSurface) DismissHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Close()
		w.WriteHeader(http.StatusNoContent)
	}
}
