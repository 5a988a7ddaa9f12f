package loginsession

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
)

// InMemoryLoginSessionRepo is an in-memory implementation of Repo
type InMemoryLoginSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session // sessionID -> Session
}

var _ Repo = (*InMemoryLoginSessionRepo)(nil)

// NewInMemoryLoginSessionRepo creates a new in-memory login session repository
func NewInMemoryLoginSessionRepo() *InMemoryLoginSessionRepo {
	return &InMemoryLoginSessionRepo{
		sessions: make(map[string]Session),
	}
}

// Upsert creates or updates a login session
func (r *InMemoryLoginSessionRepo) Upsert(sessionID string, session Session) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = sessionID
	r.sessions[sessionID] = session
	return nil
}

// Get retrieves a login session. Expired sessions are removed and reported
// as ErrSessionExpired.
func (r *InMemoryLoginSessionRepo) Get(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, fmt.Errorf("sessionID is required")
	}

	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}
	if session.Expired() {
		_ = r.Delete(sessionID)
		return Session{}, apperrors.ErrSessionExpired
	}
	return session, nil
}

// Delete removes a login session
func (r *InMemoryLoginSessionRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

// UpdateAccessToken stores a refreshed access token on an existing session.
func (r *InMemoryLoginSessionRepo) UpdateAccessToken(sessionID, accessToken string, accessExpiresAt time.Time) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if session.Expired() {
		delete(r.sessions, sessionID)
		return apperrors.ErrSessionExpired
	}
	session.AccessToken = accessToken
	session.AccessExpiresAt = accessExpiresAt
	r.sessions[sessionID] = session
	return nil
}

// DeleteExpired removes every expired session and returns how many went.
func (r *InMemoryLoginSessionRepo) DeleteExpired() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.Expired() {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
