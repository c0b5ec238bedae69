package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-rider-auth/auth"
	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenEndpoint serves a token response or an OAuth error for every request
// after checking the form fields a PKCE exchange must carry.
func tokenEndpoint(t *testing.T, status int, body map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, testClientID, r.PostForm.Get("client_id"))
		assert.Equal(t, testRedirectURI, r.PostForm.Get("redirect_uri"))
		assert.Equal(t, testVerifier, r.PostForm.Get("code_verifier"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newExchanger(srv *httptest.Server) *auth.CodeExchanger {
	return auth.NewCodeExchanger(testClientID, testRedirectURI, oauthmodel.RegionWorld,
		auth.WithTokenURL(srv.URL),
		auth.WithExchangeHTTPClient(srv.Client()),
		auth.WithExchangeNowTime(fixedNow),
	)
}

func TestCodeExchanger(t *testing.T) {
	ctx := context.Background()
	req := oauthmodel.TokenRequest{Code: "auth-code", CodeVerifier: testVerifier}

	t.Run("success", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusOK, map[string]any{
			"access_token": "abc123",
			"token_type":   "Bearer",
			"expires_in":   2592000,
			"scope":        "profile history",
		})
		tok, err := newExchanger(srv).Exchange(ctx, req)
		require.NoError(t, err)
		require.Equal(t, "abc123", tok.Token)
		require.Equal(t, testNow.Add(2592000*time.Second), tok.ExpiresAt)
		require.True(t, tok.Scopes.Equal(scope.NewSet(scope.Profile, scope.History)))
	})

	t.Run("no scope granted", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusOK, map[string]any{"access_token": "abc", "token_type": "Bearer", "expires_in": 60})
		tok, err := newExchanger(srv).Exchange(ctx, req)
		require.NoError(t, err)
		require.Empty(t, tok.Scopes)
	})

	t.Run("unknown scope", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusOK, map[string]any{"access_token": "abc", "token_type": "Bearer", "expires_in": 60, "scope": "profile mind_control"})
		_, err := newExchanger(srv).Exchange(ctx, req)
		require.Equal(t, oauthmodel.InvalidResponse, err)
	})

	t.Run("no expiry", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusOK, map[string]any{"access_token": "abc", "token_type": "Bearer"})
		_, err := newExchanger(srv).Exchange(ctx, req)
		require.Equal(t, oauthmodel.InvalidResponse, err)
	})

	t.Run("server error code", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusBadRequest, map[string]any{"error": "invalid_client_id"})
		_, err := newExchanger(srv).Exchange(ctx, req)
		require.Equal(t, oauthmodel.InvalidClientID, err)
	})

	t.Run("unmapped server error", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})
		_, err := newExchanger(srv).Exchange(ctx, req)
		require.Equal(t, oauthmodel.ServerError, err)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusOK, nil)
		e := newExchanger(srv)
		srv.Close()
		_, err := e.Exchange(ctx, req)
		require.Equal(t, oauthmodel.ConnectivityIssue, err)
	})

	t.Run("missing code", func(t *testing.T) {
		srv := tokenEndpoint(t, http.StatusOK, nil)
		_, err := newExchanger(srv).Exchange(ctx, oauthmodel.TokenRequest{CodeVerifier: testVerifier})
		require.Equal(t, oauthmodel.InvalidResponse, err)
	})
}
