package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/scope"
	"github.com/jrsteele09/go-rider-auth/token"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Exchanger trades an authorization code for an access token.
type Exchanger interface {
	Exchange(ctx context.Context, req oauthmodel.TokenRequest) (*token.AccessToken, error)
}

// CodeExchanger calls the token endpoint through x/oauth2. Failures are
// returned as oauthmodel.AuthenticationError values.
type CodeExchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
	validator  *Validator
	nowFunc    func() time.Time
}

type CodeExchangerOption func(*CodeExchanger)

// WithExchangeHTTPClient sets the client used for the token request.
func WithExchangeHTTPClient(client *http.Client) CodeExchangerOption {
	return func(e *CodeExchanger) {
		e.httpClient = client
	}
}

// WithTokenURL points the exchanger at a different token endpoint.
func WithTokenURL(tokenURL string) CodeExchangerOption {
	return func(e *CodeExchanger) {
		e.config.Endpoint.TokenURL = tokenURL
	}
}

func WithExchangeNowTime(now func() time.Time) CodeExchangerOption {
	return func(e *CodeExchanger) {
		e.nowFunc = now
	}
}

// NewCodeExchanger returns an exchanger for clientID in region.
func NewCodeExchanger(clientID, redirectURI string, region oauthmodel.Region, opts ...CodeExchangerOption) *CodeExchanger {
	e := &CodeExchanger{
		config: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			Endpoint:    Endpoint(region, oauthmodel.CodeResponseType),
		},
		validator: NewValidator(),
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *CodeExchanger) Exchange(ctx context.Context, req oauthmodel.TokenRequest) (*token.AccessToken, error) {
	if req.RedirectURI == "" {
		req.RedirectURI = e.config.RedirectURL
	}
	if err := e.validator.ValidateTokenRequest(req); err != nil {
		if authErr, ok := oauthmodel.AsAuthenticationError(err); ok {
			return nil, authErr
		}
		return nil, oauthmodel.InvalidParameters
	}
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}

	opts := []oauth2.AuthCodeOption{}
	if req.CodeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(req.CodeVerifier))
	}
	issued := e.nowFunc()
	tok, err := e.config.Exchange(ctx, req.Code, opts...)
	if err != nil {
		return nil, exchangeError(err)
	}
	return e.accessToken(tok, issued)
}

func (e *CodeExchanger) accessToken(tok *oauth2.Token, issued time.Time) (*token.AccessToken, error) {
	if tok.AccessToken == "" {
		return nil, oauthmodel.InvalidResponse
	}

	var expiresAt time.Time
	switch {
	case tok.ExpiresIn > 0:
		expiresAt = issued.Add(time.Duration(tok.ExpiresIn) * time.Second)
	case !tok.Expiry.IsZero():
		expiresAt = tok.Expiry
	default:
		return nil, oauthmodel.InvalidResponse
	}

	set := scope.NewSet()
	if raw, ok := tok.Extra("scope").(string); ok {
		parsed, err := scope.Parse(raw)
		if err != nil {
			log.Warn().Err(err).Msg("token endpoint granted an unknown scope")
			return nil, oauthmodel.InvalidResponse
		}
		set = parsed
	}
	return token.New(tok.AccessToken, expiresAt, set), nil
}

func exchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		log.Warn().Str("error_code", retrieveErr.ErrorCode).Int("status", status).Msg("token exchange rejected")
		if retrieveErr.ErrorCode == "" {
			return oauthmodel.ServerError
		}
		return oauthmodel.FromStringOr(retrieveErr.ErrorCode, oauthmodel.ServerError)
	}
	log.Err(err).Msg("token exchange failed")
	return oauthmodel.ConnectivityIssue
}
