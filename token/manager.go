package token

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Manager stores, loads and removes access tokens by key, clearing the web
// session cookies whenever a token is removed.
type Manager struct {
	repo    Repo
	cookies CookieClearer
	nowFunc func() time.Time
}

type ManagerOption func(*Manager)

// WithCookieClearer sets what Remove uses to drop session cookies.
func WithCookieClearer(clearer CookieClearer) ManagerOption {
	return func(m *Manager) {
		m.cookies = clearer
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// NewManager builds a Manager over repo.
func NewManager(repo Repo, opts ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[token.NewManager] repo is required")
	}
	m := &Manager{
		repo:    repo,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Get returns the token stored under key, or nil when there is none or the
// stored record is incomplete. An empty key means DefaultKey.
func (m *Manager) Get(ctx context.Context, key string) (*AccessToken, error) {
	key = ResolveKey(key)
	rec, err := m.repo.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[Manager Get] key %s", key)
	}
	tok := DecodeFromStorage(rec)
	if tok == nil {
		log.Warn().Str("key", key).Msg("discarding incomplete stored token")
	}
	return tok, nil
}

// GetValid is Get but also treats an expired token as absent.
func (m *Manager) GetValid(ctx context.Context, key string) (*AccessToken, error) {
	tok, err := m.Get(ctx, key)
	if err != nil || tok == nil {
		return nil, err
	}
	if tok.Expired(m.nowFunc()) {
		return nil, nil
	}
	return tok, nil
}

// Set overwrites the token stored under key.
func (m *Manager) Set(ctx context.Context, tok *AccessToken, key string) error {
	if tok == nil || tok.Token == "" {
		return errors.New("[Manager Set] token is required")
	}
	key = ResolveKey(key)
	if err := m.repo.Upsert(ctx, key, RecordFromToken(tok)); err != nil {
		return errors.Wrapf(err, "[Manager Set] key %s", key)
	}
	log.Debug().Str("key", key).Time("expires_at", tok.ExpiresAt).Msg("access token stored")
	return nil
}

// Remove deletes the token stored under key and expires the session
// cookies so the next login cannot reuse the old web session.
func (m *Manager) Remove(ctx context.Context, key string) error {
	key = ResolveKey(key)
	if err := m.repo.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Wrapf(err, "[Manager Remove] key %s", key)
	}
	if m.cookies != nil {
		if err := m.cookies.ClearSessionCookies(ctx); err != nil {
			return errors.Wrap(err, "[Manager Remove] clearing session cookies")
		}
	}
	log.Debug().Str("key", key).Msg("access token removed")
	return nil
}
