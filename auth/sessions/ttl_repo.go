package sessions

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

var _ Repo = (*TTLRepo)(nil)

// TTLRepo keeps sessions in a ttlcache so abandoned logins age out on their
// own.
type TTLRepo struct {
	cache *ttlcache.Cache[string, *LoginSession]
	ttl   time.Duration
}

// NewTTLRepo starts a cache whose entries live for ttl unless the session
// carries its own ExpiresAt.
func NewTTLRepo(ttl time.Duration) *TTLRepo {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *LoginSession](ttl),
		ttlcache.WithDisableTouchOnHit[string, *LoginSession](),
	)
	go cache.Start()
	return &TTLRepo{cache: cache, ttl: ttl}
}

// Stop ends the cache's cleanup goroutine.
func (r *TTLRepo) Stop() {
	r.cache.Stop()
}

func (r *TTLRepo) Upsert(session *LoginSession) error {
	if session == nil || session.ID == "" {
		return ErrInvalidSession
	}
	ttl := ttlcache.DefaultTTL
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}
	r.cache.Set(session.ID, session.clone(), ttl)
	return nil
}

func (r *TTLRepo) Get(sessionID string) (*LoginSession, error) {
	item := r.cache.Get(sessionID)
	if item == nil {
		return nil, ErrSessionNotFound
	}
	return item.Value().clone(), nil
}

func (r *TTLRepo) Delete(sessionID string) error {
	if !r.cache.Has(sessionID) {
		return ErrSessionNotFound
	}
	r.cache.Delete(sessionID)
	return nil
}

func (r *TTLRepo) DeleteExpiredSessions(expiryTime time.Time) error {
	for id, item := range r.cache.Items() {
		if item.Value().Expired(expiryTime) {
			r.cache.Delete(id)
		}
	}
	r.cache.DeleteExpired()
	return nil
}
