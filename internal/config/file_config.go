package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileVar names the environment variable pointing at an optional YAML file.
// File keys are the environment variable names, e.g.
//
//	API_BASE_URL: https://api.example.com/v1/
//	SESSION_MAX_AGE: 12h
const ConfigFileVar = "CONFIG_FILE"

type fileValues map[string]string

// source resolves a setting from the environment first, then the config file.
type source struct {
	file fileValues
}

func (s source) get(name, defaultValue string) string {
	if value := GetEnv(name, ""); value != "" {
		return value
	}
	if value, ok := s.file[name]; ok && value != "" {
		return value
	}
	return defaultValue
}

// Load builds a Config layered over the YAML file at path. An empty path
// behaves like New.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[config Load] read %s: %w", path, err)
	}
	values := fileValues{}
	if err := yaml.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("[config Load] parse %s: %w", path, err)
	}
	return newFromValues(values), nil
}

// FromEnv loads the file named by CONFIG_FILE, if any.
func FromEnv() (Config, error) {
	return Load(os.Getenv(ConfigFileVar))
}
