package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jrsteele09/go-rider-auth/internal/errors"
	"github.com/jrsteele09/go-rider-auth/oauthmodel"
)

// Config is the immutable configuration handed to every component. Values
// are read once from the environment by New.
type Config interface {
	EnvConfig
	OAuthConfig
	StorageConfig
	RidesConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type OAuthConfig interface {
	GetClientID() string
	GetRedirectURI() string
	GetRegion() oauthmodel.Region
	GetResponseType() oauthmodel.ResponseType
	GetScopes() []string
	GetCustomScopes() []string
	GetSDKVersion() string
	GetRequestURI() string
	GetTokenKey() string
	GetSessionTTL() time.Duration
	GetLoginTimeout() time.Duration
}

type StorageConfig interface {
	GetTokenStore() TokenStore
	GetSQLitePath() string
	GetRedisAddr() string
}

type RidesConfig interface {
	GetAPIBaseURL() string
	GetProductID() string
	GetPickup() []float64
	GetDropoff() []float64
}

type mainConfig struct {
	EnvVars
	OAuth
	Storage
	Rides
}

var _ Config = mainConfig{}

// New parses the environment and validates the result.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrapf(err, "parse environment")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	if c.ClientID == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "RIDERAUTH_CLIENT_ID is required")
	}
	switch oauthmodel.ResponseType(c.ResponseType) {
	case oauthmodel.TokenResponseType, oauthmodel.CodeResponseType:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unsupported response type %q", c.ResponseType)
	}
	switch c.GetTokenStore() {
	case TokenStoreMemory, TokenStoreSQLite, TokenStoreRedis:
	default:
		return errors.Wrapf(errors.ErrUnsupported, "token store %q", c.TokenStoreKind)
	}
	if n := len(c.Pickup); n != 0 && n != 2 {
		return errors.Wrapf(errors.ErrInvalidConfig, "RIDERAUTH_PICKUP must be lat,lng")
	}
	if n := len(c.Dropoff); n != 0 && n != 2 {
		return errors.Wrapf(errors.ErrInvalidConfig, "RIDERAUTH_DROPOFF must be lat,lng")
	}
	return nil
}
