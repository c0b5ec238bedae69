// Package redisstore keeps access tokens in Redis hashes so several
// processes can share one login.
package redisstore

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-rider-auth/token"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "riderauth:token:"

var _ token.Repo = (*Store)(nil)

// Store writes the flat <key>_date, <key>_token and <key>_scopes fields of a
// record with one HSET, so readers never see a partial record.
type Store struct {
	client *redis.Client
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Dial connects to addr, e.g. "localhost:6379" or a redis:// URL.
func Dial(ctx context.Context, addr string) (*Store, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Upsert(ctx context.Context, key string, record token.StoredRecord) error {
	fields := record.Fields(key)
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	if err := s.client.HSet(ctx, keyPrefix+key, values).Err(); err != nil {
		return fmt.Errorf("hset token %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (*token.StoredRecord, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall token %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, token.ErrNotFound
	}
	rec, ok := token.RecordFromFields(key, fields)
	if !ok {
		return &token.StoredRecord{}, nil
	}
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, keyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("del token %s: %w", key, err)
	}
	if n == 0 {
		return token.ErrNotFound
	}
	return nil
}
