package loginsession

import (
	"time"

	"github.com/jrsteele09/quote-admin/gateway"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type Session struct {
	// Core identity
	ID     string
	UserID string
	Email  string
	Name   string
	Role   string

	// Tokens issued by the API
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time

	// Session management
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && !NowTimeFunc().Before(s.ExpiresAt)
}

// GatewaySession is the read-only view handed to a gateway client.
func (s Session) GatewaySession() *gateway.Session {
	return &gateway.Session{
		UserID:       s.UserID,
		Email:        s.Email,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}

type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
	DeleteExpired() (int, error)
	// UpdateAccessToken replaces the access token of a live session. It never
	// recreates a session that was deleted or has expired.
	UpdateAccessToken(sessionID, accessToken string, accessExpiresAt time.Time) error
}
