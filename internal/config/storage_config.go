package config

import "strings"

// TokenStore names a token.Repo backend.
type TokenStore string

const (
	TokenStoreMemory TokenStore = "memory"
	TokenStoreSQLite TokenStore = "sqlite"
	TokenStoreRedis  TokenStore = "redis"
)

type Storage struct {
	TokenStoreKind string `env:"RIDERAUTH_TOKEN_STORE" envDefault:"memory"`
	SQLitePath     string `env:"RIDERAUTH_SQLITE_PATH" envDefault:"./data/riderauth.db"`
	RedisAddr      string `env:"RIDERAUTH_REDIS_ADDR" envDefault:"localhost:6379"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetTokenStore() TokenStore {
	return TokenStore(strings.ToLower(strings.TrimSpace(s.TokenStoreKind)))
}

func (s Storage) GetSQLitePath() string {
	return s.SQLitePath
}

func (s Storage) GetRedisAddr() string {
	return s.RedisAddr
}
