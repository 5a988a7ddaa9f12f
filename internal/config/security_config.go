package config

import "time"

const sessionMaxAgeVar = "SESSION_MAX_AGE"

type SecurityConfig interface {
	GetMaxSessionAge() time.Duration
	GetSessionCookieName() string
}

type Security struct {
	source
}

var _ SecurityConfig = Security{}

// GetMaxSessionAge caps how long a login session lives, whatever the access token says.
func (s Security) GetMaxSessionAge() time.Duration {
	return durationOr(s.get(sessionMaxAgeVar, ""), 8*time.Hour)
}

func (Security) GetSessionCookieName() string {
	return "session_id"
}
