package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-rider-auth/auth/sessions"
	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/scope"
	"github.com/jrsteele09/go-rider-auth/signature"
	"github.com/jrsteele09/go-rider-auth/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ResultCode is the status half of a login result.
type ResultCode int

const (
	ResultCancelled ResultCode = 0
	ResultOK        ResultCode = -1
)

// Payload is the data half of a login result.
type Payload map[string]any

// Payload keys.
const (
	PayloadAccessTokenKey = "access_token_key"
	PayloadErrorKey       = "login_error_key"
	PayloadScopesKey      = "scopes_key"
)

const (
	DefaultRequestCode = 1001
	defaultSessionTTL  = 10 * time.Minute
)

// Config is the immutable client configuration for a LoginManager.
type Config struct {
	ClientID     string
	RedirectURI  string
	Region       oauthmodel.Region
	ResponseType oauthmodel.ResponseType
	CustomScopes []string
	SDKVersion   string
	RequestURI   string
	// TokenKey is the storage slot for tokens obtained by this manager.
	TokenKey string
	// SessionTTL bounds how long an unanswered login stays pending.
	SessionTTL time.Duration
}

type pendingLogin struct {
	requestCode int
	sessionID   string
	callback    LoginCallback
	cancel      context.CancelFunc
}

type nativeHandoff struct {
	validator *signature.Validator
	apps      []signature.AppType
	surface   Surface
}

// LoginManager owns the request-code contract between starting a login and
// receiving its result. Only one login is pending at a time; starting
// another orphans the first.
type LoginManager struct {
	cfg         Config
	tokens      *token.Manager
	surface     Surface
	sessions    sessions.Repo
	ownSessions *sessions.TTLRepo
	exchanger   Exchanger
	validator   *Validator
	handoff     *nativeHandoff
	nowFunc     func() time.Time

	mu      sync.Mutex
	pending *pendingLogin
	wg      sync.WaitGroup
}

// LoginManagerOption defines a function type to modify the LoginManager.
type LoginManagerOption func(*LoginManager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) LoginManagerOption {
	return func(m *LoginManager) {
		m.nowFunc = nowFunc
	}
}

// WithSessionRepo replaces the default ttlcache-backed session repo.
func WithSessionRepo(repo sessions.Repo) LoginManagerOption {
	return func(m *LoginManager) {
		m.sessions = repo
	}
}

// WithExchanger sets what turns authorization codes into tokens.
func WithExchanger(exchanger Exchanger) LoginManagerOption {
	return func(m *LoginManager) {
		m.exchanger = exchanger
	}
}

// WithNativeHandoff routes logins to surface whenever one of apps is
// installed and carries a trusted signature.
func WithNativeHandoff(validator *signature.Validator, surface Surface, apps ...signature.AppType) LoginManagerOption {
	return func(m *LoginManager) {
		if len(apps) == 0 {
			apps = signature.SupportedApps()
		}
		m.handoff = &nativeHandoff{validator: validator, apps: apps, surface: surface}
	}
}

// NewLoginManager creates a LoginManager that stores tokens in tokens and
// shows the authorization page on surface.
func NewLoginManager(cfg Config, tokens *token.Manager, surface Surface, options ...LoginManagerOption) (*LoginManager, error) {
	if tokens == nil {
		return nil, errors.New("[NewLoginManager] token manager is required")
	}
	if surface == nil {
		return nil, errors.New("[NewLoginManager] surface is required")
	}
	if cfg.ResponseType == "" {
		cfg.ResponseType = oauthmodel.TokenResponseType
	}
	if cfg.Region == "" {
		cfg.Region = oauthmodel.RegionWorld
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	m := &LoginManager{
		cfg:       cfg,
		tokens:    tokens,
		surface:   surface,
		validator: NewValidator(),
		nowFunc:   time.Now,
	}
	for _, opt := range options {
		opt(m)
	}

	if m.sessions == nil {
		m.ownSessions = sessions.NewTTLRepo(cfg.SessionTTL)
		m.sessions = m.ownSessions
	}
	if m.exchanger == nil && cfg.ResponseType == oauthmodel.CodeResponseType {
		m.exchanger = NewCodeExchanger(cfg.ClientID, cfg.RedirectURI, cfg.Region, WithExchangeNowTime(m.nowFunc))
	}
	return m, nil
}

// StartLogin begins a login for scopes and returns immediately. The result
// reaches callback through OnActivityResult once the surface settles. ctx
// bounds the whole attempt, not just this call.
func (m *LoginManager) StartLogin(ctx context.Context, scopes scope.Set, requestCode int, callback LoginCallback) error {
	if callback == nil {
		return errors.New("[StartLogin] callback is required")
	}

	now := m.nowFunc()
	session := &sessions.LoginSession{
		ID:           uuid.NewString(),
		RequestCode:  requestCode,
		Scopes:       scope.NewSet(scopes.Slice()...),
		ResponseType: m.cfg.ResponseType,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.cfg.SessionTTL),
	}
	challenge := ""
	if m.cfg.ResponseType == oauthmodel.CodeResponseType {
		session.CodeVerifier, challenge = NewPKCE()
	}
	if err := m.sessions.Upsert(session); err != nil {
		return errors.Wrap(err, "[StartLogin] failed to record login session")
	}

	flowCtx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	previous := m.pending
	m.pending = &pendingLogin{
		requestCode: requestCode,
		sessionID:   session.ID,
		callback:    callback,
		cancel:      cancel,
	}
	m.mu.Unlock()

	if previous != nil {
		m.supersede(previous)
	}
	log.Debug().Str("session", session.ID).Int("request_code", requestCode).Msg("login started")

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		resultCode, payload := m.runFlow(flowCtx, session, challenge)
		m.dispatch(context.WithoutCancel(ctx), session.ID, requestCode, resultCode, payload, callback)
	}()
	return nil
}

// Login starts a login with DefaultRequestCode and returns a channel that
// receives exactly one Result. A newer login resolves it as cancelled.
func (m *LoginManager) Login(ctx context.Context, scopes scope.Set) <-chan Result {
	future := newFutureCallback()
	if err := m.StartLogin(ctx, scopes, DefaultRequestCode, future); err != nil {
		log.Err(err).Msg("login could not start")
		loginResults.WithLabelValues(OutcomeError.String()).Inc()
		future.OnLoginError(oauthmodel.Unknown)
	}
	return future.results
}

// OnActivityResult delivers a login result. Results whose requestCode is
// not the pending one are ignored without touching any state.
func (m *LoginManager) OnActivityResult(ctx context.Context, requestCode int, resultCode ResultCode, payload Payload, callback LoginCallback) {
	pending, ok := m.claim(requestCode, "")
	if !ok {
		return
	}
	pending.cancel()
	res, delivered := m.deliver(ctx, resultCode, payload)
	if delivered {
		notify(callback, res)
	}

	// The flow's own dispatch is now stale, so a Login future waiting on
	// the claimed attempt has to be resolved here.
	if future, isFuture := pending.callback.(*futureCallback); isFuture && LoginCallback(future) != callback {
		if !delivered {
			res = Result{Outcome: OutcomeCancelled}
		}
		notify(future, res)
	}
}

// Pending reports the outstanding request code, if any.
func (m *LoginManager) Pending() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return 0, false
	}
	return m.pending.requestCode, true
}

// Close abandons any pending login and waits for its goroutine to finish.
func (m *LoginManager) Close() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	if pending != nil {
		m.supersede(pending)
	}
	m.wg.Wait()
	if m.ownSessions != nil {
		m.ownSessions.Stop()
	}
}

// dispatch is OnActivityResult for results produced by this manager's own
// flow goroutines. The attempt must still be the pending one.
func (m *LoginManager) dispatch(ctx context.Context, sessionID string, requestCode int, resultCode ResultCode, payload Payload, callback LoginCallback) {
	if _, ok := m.claim(requestCode, sessionID); !ok {
		return
	}
	if res, ok := m.deliver(ctx, resultCode, payload); ok {
		notify(callback, res)
	}
}

func (m *LoginManager) claim(requestCode int, sessionID string) (*pendingLogin, bool) {
	m.mu.Lock()
	pending := m.pending
	if pending == nil || pending.requestCode != requestCode || (sessionID != "" && pending.sessionID != sessionID) {
		m.mu.Unlock()
		staleResults.Inc()
		log.Debug().Int("request_code", requestCode).Msg("ignoring result for a login that is not pending")
		return nil, false
	}
	m.pending = nil
	m.mu.Unlock()

	if err := m.sessions.Delete(pending.sessionID); err != nil && !errors.Is(err, sessions.ErrSessionNotFound) {
		log.Err(err).Str("session", pending.sessionID).Msg("failed to delete login session")
	}
	if err := m.sessions.DeleteExpiredSessions(m.nowFunc()); err != nil {
		log.Err(err).Msg("failed to delete expired login sessions")
	}
	return pending, true
}

func (m *LoginManager) supersede(previous *pendingLogin) {
	previous.cancel()
	if err := m.sessions.Delete(previous.sessionID); err != nil && !errors.Is(err, sessions.ErrSessionNotFound) {
		log.Err(err).Str("session", previous.sessionID).Msg("failed to delete superseded login session")
	}
	log.Debug().Str("session", previous.sessionID).Msg("pending login superseded")
	if future, ok := previous.callback.(*futureCallback); ok {
		future.OnLoginCancel()
	}
}

// deliver persists and counts a result. It reports false for result codes
// that carry no outcome. The token is stored whether or not anyone is
// listening for it.
func (m *LoginManager) deliver(ctx context.Context, resultCode ResultCode, payload Payload) (Result, bool) {
	switch resultCode {
	case ResultOK:
		if payload == nil {
			return m.fail(oauthmodel.Unknown), true
		}
		tok, ok := tokenFromPayload(payload)
		if !ok {
			return m.fail(oauthmodel.Unknown), true
		}
		if err := m.tokens.Set(ctx, tok, m.cfg.TokenKey); err != nil {
			log.Err(err).Msg("failed to persist access token")
			return m.fail(oauthmodel.Unknown), true
		}
		loginResults.WithLabelValues(OutcomeSuccess.String()).Inc()
		return Result{Outcome: OutcomeSuccess, Token: tok}, true
	case ResultCancelled:
		if payload == nil {
			loginResults.WithLabelValues(OutcomeCancelled.String()).Inc()
			return Result{Outcome: OutcomeCancelled}, true
		}
		return m.fail(errorFromPayload(payload)), true
	default:
		log.Warn().Int("result_code", int(resultCode)).Msg("ignoring undefined login result code")
		return Result{}, false
	}
}

func (m *LoginManager) fail(err oauthmodel.AuthenticationError) Result {
	loginResults.WithLabelValues(OutcomeError.String()).Inc()
	log.Info().Str("error", err.String()).Msg("login failed")
	return Result{Outcome: OutcomeError, Err: err}
}

// notify hands res to callback. A nil callback is allowed.
func notify(callback LoginCallback, res Result) {
	if callback == nil {
		return
	}
	switch res.Outcome {
	case OutcomeSuccess:
		callback.OnLoginSuccess(res.Token)
	case OutcomeCancelled:
		callback.OnLoginCancel()
	default:
		callback.OnLoginError(res.Err)
	}
}

func (m *LoginManager) runFlow(ctx context.Context, session *sessions.LoginSession, challenge string) (ResultCode, Payload) {
	params := &oauthmodel.AuthorizationParameters{
		ClientID:      m.cfg.ClientID,
		RedirectURI:   m.cfg.RedirectURI,
		ResponseType:  session.ResponseType,
		Scopes:        session.Scopes,
		CustomScopes:  m.cfg.CustomScopes,
		Region:        m.cfg.Region,
		CodeChallenge: challenge,
		SDKVersion:    m.cfg.SDKVersion,
		RequestURI:    m.cfg.RequestURI,
	}
	if err := m.validator.ValidateRedirectURI(params.RedirectURI); err != nil {
		return ResultCancelled, errorPayload(err)
	}
	authURL, err := AssembleAuthURL(params)
	if err != nil {
		return ResultCancelled, errorPayload(err)
	}

	flow := NewOAuthFlow(m.cfg.RedirectURI, session.ResponseType, m.nowFunc)
	c := flow.Run(ctx, m.chooseSurface(ctx), authURL)
	switch c.Outcome {
	case OutcomeCancelled:
		return ResultCancelled, nil
	case OutcomeError:
		return ResultCancelled, errorPayload(c.Err)
	}

	tok := c.Token
	if c.Code != "" {
		if m.exchanger == nil {
			return ResultCancelled, errorPayload(oauthmodel.InvalidParameters)
		}
		tok, err = m.exchanger.Exchange(ctx, oauthmodel.TokenRequest{
			Code:         c.Code,
			CodeVerifier: session.CodeVerifier,
			RedirectURI:  m.cfg.RedirectURI,
		})
		if err != nil {
			return ResultCancelled, errorPayload(err)
		}
	}
	return ResultOK, Payload{
		PayloadAccessTokenKey: tok,
		PayloadScopesKey:      token.EncodeScopes(tok.Scopes),
	}
}

func (m *LoginManager) chooseSurface(ctx context.Context) Surface {
	if m.handoff == nil {
		return m.surface
	}
	if app, ok := m.handoff.validator.FirstInstalled(ctx, m.handoff.apps...); ok {
		log.Info().Str("app", app.Name).Msg("handing login to companion app")
		return m.handoff.surface
	}
	return m.surface
}

func errorPayload(err error) Payload {
	authErr, ok := oauthmodel.AsAuthenticationError(err)
	if !ok {
		authErr = oauthmodel.Unknown
	}
	return Payload{PayloadErrorKey: authErr.String()}
}

func errorFromPayload(payload Payload) oauthmodel.AuthenticationError {
	switch v := payload[PayloadErrorKey].(type) {
	case oauthmodel.AuthenticationError:
		return oauthmodel.FromStringOr(string(v), oauthmodel.Unknown)
	case string:
		return oauthmodel.FromStringOr(v, oauthmodel.Unknown)
	default:
		return oauthmodel.Unknown
	}
}

func tokenFromPayload(payload Payload) (*token.AccessToken, bool) {
	switch v := payload[PayloadAccessTokenKey].(type) {
	case *token.AccessToken:
		if v != nil && v.Token != "" {
			return v, true
		}
	case token.AccessToken:
		if v.Token != "" {
			return &v, true
		}
	}
	return nil, false
}
