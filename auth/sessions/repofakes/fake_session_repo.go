package fakesessionrepo

import (
	"sync"
	"time"

	"github.com/jrsteele09/go-rider-auth/auth/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions map[string]sessions.LoginSession
	lock     sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]sessions.LoginSession),
	}
}

func (sr *FakeSessionRepo) Upsert(session *sessions.LoginSession) error {
	if session == nil || session.ID == "" {
		return sessions.ErrInvalidSession
	}
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.sessions[session.ID] = *session
	return nil
}

func (sr *FakeSessionRepo) Delete(sessionID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if _, ok := sr.sessions[sessionID]; !ok {
		return sessions.ErrSessionNotFound
	}
	delete(sr.sessions, sessionID)
	return nil
}

func (sr *FakeSessionRepo) Get(sessionID string) (*sessions.LoginSession, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	session, ok := sr.sessions[sessionID]
	if !ok {
		return nil, sessions.ErrSessionNotFound
	}
	return &session, nil
}

func (sr *FakeSessionRepo) DeleteExpiredSessions(expiryTime time.Time) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for id, session := range sr.sessions {
		if session.Expired(expiryTime) {
			delete(sr.sessions, id)
		}
	}
	return nil
}

// Len reports how many sessions are pending.
func (sr *FakeSessionRepo) Len() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return len(sr.sessions)
}
