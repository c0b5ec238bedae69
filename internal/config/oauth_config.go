package config

import (
	"time"

	"github.com/jrsteele09/go-rider-auth/oauthmodel"
)

type OAuth struct {
	ClientID     string        `env:"RIDERAUTH_CLIENT_ID"`
	RedirectURI  string        `env:"RIDERAUTH_REDIRECT_URI" envDefault:"http://127.0.0.1:8910/callback"`
	Region       string        `env:"RIDERAUTH_REGION" envDefault:"WORLD"`
	ResponseType string        `env:"RIDERAUTH_RESPONSE_TYPE" envDefault:"token"`
	Scopes       []string      `env:"RIDERAUTH_SCOPES" envSeparator:"," envDefault:"profile,ride_widgets"`
	CustomScopes []string      `env:"RIDERAUTH_CUSTOM_SCOPES" envSeparator:","`
	SDKVersion   string        `env:"RIDERAUTH_SDK_VERSION" envDefault:"0.10.0"`
	RequestURI   string        `env:"RIDERAUTH_REQUEST_URI"`
	TokenKey     string        `env:"RIDERAUTH_TOKEN_KEY" envDefault:"defaultAccessToken"`
	SessionTTL   time.Duration `env:"RIDERAUTH_SESSION_TTL" envDefault:"10m"`
	LoginTimeout time.Duration `env:"RIDERAUTH_LOGIN_TIMEOUT" envDefault:"5m"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetRedirectURI() string {
	return o.RedirectURI
}

func (o OAuth) GetRegion() oauthmodel.Region {
	return oauthmodel.ParseRegion(o.Region)
}

func (o OAuth) GetResponseType() oauthmodel.ResponseType {
	return oauthmodel.ResponseType(o.ResponseType)
}

func (o OAuth) GetScopes() []string {
	return append([]string(nil), o.Scopes...)
}

func (o OAuth) GetCustomScopes() []string {
	return append([]string(nil), o.CustomScopes...)
}

func (o OAuth) GetSDKVersion() string {
	return o.SDKVersion
}

func (o OAuth) GetRequestURI() string {
	return o.RequestURI
}

func (o OAuth) GetTokenKey() string {
	return o.TokenKey
}

func (o OAuth) GetSessionTTL() time.Duration {
	return o.SessionTTL
}

func (o OAuth) GetLoginTimeout() time.Duration {
	return o.LoginTimeout
}
