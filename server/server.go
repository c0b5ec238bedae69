package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/jrsteele09/go-rider-auth/auth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotLoopback     = errors.New("redirect uri must be an http loopback address")
	ErrNoLoginInFlight = errors.New("no login in progress")
)

// Opener shows the authorization page to the user, typically by launching
// the system browser.
type Opener func(ctx context.Context, authURL string) error

// LogOpener asks the user to open the URL themselves.
func LogOpener(_ context.Context, authURL string) error {
	log.Info().Str("url", authURL).Msg("open this URL in a browser to sign in")
	return nil
}

// LoopbackSurface receives the OAuth redirect on a local HTTP listener. It
// implements auth.Surface: every Open starts a fresh navigation stream and
// closes the previous one.
type LoopbackSurface struct {
	env         string
	mux         *http.ServeMux
	routes      []string
	redirectURI string
	redirect    *url.URL
	opener      Opener

	mu     sync.Mutex
	active chan auth.Navigation
}

var _ auth.Surface = (*LoopbackSurface)(nil)

type Option func(*LoopbackSurface)

// WithOpener replaces LogOpener.
func WithOpener(opener Opener) Option {
	return func(s *LoopbackSurface) {
		s.opener = opener
	}
}

// WithEnv sets the environment name. Routes and requests are only logged
// in DEV.
func WithEnv(env string) Option {
	return func(s *LoopbackSurface) {
		s.env = env
	}
}

// NewLoopbackSurface serves redirectURI, which must point at this host.
func NewLoopbackSurface(redirectURI string, opts ...Option) (*LoopbackSurface, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, errors.Wrap(err, "[NewLoopbackSurface] invalid redirect uri")
	}
	if u.Scheme != "http" || !isLoopbackHost(u.Hostname()) {
		return nil, fmt.Errorf("%q: %w", redirectURI, ErrNotLoopback)
	}

	s := &LoopbackSurface{
		env:         "DEV",
		mux:         http.NewServeMux(),
		redirectURI: redirectURI,
		redirect:    u,
		opener:      LogOpener,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

// Addr is the host:port the redirect URI points at.
func (s *LoopbackSurface) Addr() string {
	if s.redirect.Port() == "" {
		return net.JoinHostPort(s.redirect.Hostname(), "80")
	}
	return s.redirect.Host
}

func (s *LoopbackSurface) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *LoopbackSurface) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *LoopbackSurface) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Open starts a navigation stream and hands authURL to the opener. The
// stream closes when ctx ends, the user dismisses the page, or a later
// Open replaces it.
func (s *LoopbackSurface) Open(ctx context.Context, authURL string) (<-chan auth.Navigation, error) {
	navigations := make(chan auth.Navigation, 4)

	s.mu.Lock()
	if s.active != nil {
		close(s.active)
	}
	s.active = navigations
	s.mu.Unlock()

	if err := s.opener(ctx, authURL); err != nil {
		s.release(navigations)
		return nil, errors.Wrap(err, "[LoopbackSurface.Open] failed to open authorization page")
	}

	go func() {
		<-ctx.Done()
		s.release(navigations)
	}()
	return navigations, nil
}

// Close ends the current navigation stream, if any.
func (s *LoopbackSurface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		close(s.active)
		s.active = nil
	}
}

func (s *LoopbackSurface) release(navigations chan auth.Navigation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == navigations {
		close(s.active)
		s.active = nil
	}
}

func (s *LoopbackSurface) publish(nav auth.Navigation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoLoginInFlight
	}
	select {
	case s.active <- nav:
		return nil
	default:
		log.Warn().Str("url", nav.URL).Msg("navigation stream full, dropping redirect")
		return ErrNoLoginInFlight
	}
}

func (s *LoopbackSurface) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Debug().Str("method", colourMethod(method)).Msg(path)
}

func isLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
