package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar = "API_BASE_URL"
	apiTimeoutVar = "API_TIMEOUT"
)

type API struct {
	source
}

var _ APIConfig = API{}

// GetAPIBaseURL always ends with a slash so relative paths resolve under it.
func (a API) GetAPIBaseURL() string {
	base := a.get(apiBaseURLVar, "http://localhost:3001/")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

func (a API) GetAPITimeout() time.Duration {
	return durationOr(a.get(apiTimeoutVar, ""), 15*time.Second)
}

func durationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
