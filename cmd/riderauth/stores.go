package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jrsteele09/go-rider-auth/internal/config"
	"github.com/jrsteele09/go-rider-auth/internal/errors"
	"github.com/jrsteele09/go-rider-auth/token"
	"github.com/jrsteele09/go-rider-auth/token/redisstore"
	tokenfakerepo "github.com/jrsteele09/go-rider-auth/token/repofake"
	"github.com/jrsteele09/go-rider-auth/token/sqlitestore"
	"github.com/rs/zerolog/log"
)

// openTokenRepo builds the configured token backend and a func releasing it.
func openTokenRepo(ctx context.Context, c config.Config) (token.Repo, func(), error) {
	switch c.GetTokenStore() {
	case config.TokenStoreSQLite:
		path := c.GetSQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, errors.Wrapf(err, "create %s", filepath.Dir(path))
		}
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", path).Msg("sqlite token store")
		return store, closer(store.Close, "sqlite"), nil
	case config.TokenStoreRedis:
		store, err := redisstore.Dial(ctx, c.GetRedisAddr())
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("addr", c.GetRedisAddr()).Msg("redis token store")
		return store, closer(store.Close, "redis"), nil
	case config.TokenStoreMemory:
		log.Warn().Msg("tokens are kept in memory and lost on exit")
		return tokenfakerepo.NewFakeTokensRepo(), func() {}, nil
	default:
		return nil, nil, errors.Wrapf(errors.ErrUnsupported, "token store %q", c.GetTokenStore())
	}
}

func closer(closeFn func() error, name string) func() {
	return func() {
		if err := closeFn(); err != nil {
			log.Err(err).Str("store", name).Msg("failed to close token store")
		}
	}
}
