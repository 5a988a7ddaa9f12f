package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	APIConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetLogFormat() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// APIConfig describes the remote backend API every dashboard request is proxied to.
type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Cors
	API
	Security
}

// New returns a Config backed by environment variables only.
func New() Config {
	return newFromValues(nil)
}

func newFromValues(file fileValues) Config {
	src := source{file: file}
	return mainConfig{
		EnvVars:  EnvVars{src},
		Cors:     Cors{src},
		API:      API{src},
		Security: Security{src},
	}
}
