package auth_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-rider-auth/auth"
	"github.com/jrsteele09/go-rider-auth/oauthmodel"
	"github.com/jrsteele09/go-rider-auth/scope"
	"github.com/stretchr/testify/require"
)

func TestParseRedirect(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := auth.ParseRedirect(testRedirectURI+"#access_token=abc123&expires_in=3600&scope=profile%20ride_widgets", testNow)
		require.Equal(t, auth.OutcomeSuccess, c.Outcome)
		require.Equal(t, "abc123", c.Token.Token)
		require.Equal(t, testNow.Add(time.Hour), c.Token.ExpiresAt)
		require.True(t, c.Token.Scopes.Equal(scope.NewSet(scope.Profile, scope.RideWidgets)))
	})

	t.Run("error query", func(t *testing.T) {
		c := auth.ParseRedirect(testRedirectURI+"?error=invalid_scope", testNow)
		require.Equal(t, auth.OutcomeError, c.Outcome)
		require.Equal(t, oauthmodel.InvalidScope, c.Err)
	})

	t.Run("error query wins over fragment", func(t *testing.T) {
		c := auth.ParseRedirect(testRedirectURI+"?error=SERVER_ERROR#access_token=abc&expires_in=1&scope=profile", testNow)
		require.Equal(t, oauthmodel.ServerError, c.Err)
	})

	t.Run("unrecognised error", func(t *testing.T) {
		c := auth.ParseRedirect(testRedirectURI+"?error=kaboom", testNow)
		require.Equal(t, oauthmodel.InvalidResponse, c.Err)
	})

	t.Run("empty error", func(t *testing.T) {
		c := auth.ParseRedirect(testRedirectURI+"?error=", testNow)
		require.Equal(t, oauthmodel.InvalidResponse, c.Err)
	})

	t.Run("server driven errors are preserved", func(t *testing.T) {
		for _, name := range []string{"invalid_parameters", "invalid_client_id", "server_error", "temporarily_unavailable"} {
			c := auth.ParseRedirect(testRedirectURI+"?error="+name, testNow)
			require.Equal(t, auth.OutcomeError, c.Outcome)
			require.Equal(t, name, c.Err.String())
		}
	})

	t.Run("bad fragment", func(t *testing.T) {
		c := auth.ParseRedirect(testRedirectURI+"#access_token=abc&scope=profile", testNow)
		require.Equal(t, auth.OutcomeError, c.Outcome)
		require.Equal(t, oauthmodel.InvalidResponse, c.Err)
		require.Nil(t, c.Token)
	})
}

func TestParseCodeRedirect(t *testing.T) {
	c := auth.ParseCodeRedirect(testRedirectURI + "?code=xyz")
	require.Equal(t, auth.OutcomeSuccess, c.Outcome)
	require.Equal(t, "xyz", c.Code)

	c = auth.ParseCodeRedirect(testRedirectURI + "?error=invalid_client_id&code=xyz")
	require.Equal(t, oauthmodel.InvalidClientID, c.Err)

	c = auth.ParseCodeRedirect(testRedirectURI)
	require.Equal(t, oauthmodel.InvalidResponse, c.Err)
}
