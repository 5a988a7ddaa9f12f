package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	envVar          = "ENV"
	logLevelEnvVar  = "LOG_LEVEL"
	logFormatEnvVar = "LOG_FORMAT"
)

type EnvVars struct {
	source
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.get(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.get(appNameVar, "Quote Admin")
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(e.get(envVar, "DEV"))
}

// GetLogLevel returns a zerolog level name (debug, info, warn, error).
func (e EnvVars) GetLogLevel() string {
	return e.get(logLevelEnvVar, "info")
}

// GetLogFormat returns "json" or "text". DEV defaults to text.
func (e EnvVars) GetLogFormat() string {
	if e.GetEnv() == "DEV" {
		return e.get(logFormatEnvVar, "text")
	}
	return e.get(logFormatEnvVar, "json")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
