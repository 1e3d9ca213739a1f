// Package envcheck validates the environment a notebook session needs before
// it talks to the hosted document-index platform.
package envcheck

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment is a read view over process-style variables.
type Environment interface {
	Lookup(key string) (string, bool)
}

// MutableEnvironment is an Environment that a configuration file can be
// loaded into.
type MutableEnvironment interface {
	Environment
	Set(key, value string) error
}

// OSEnvironment reads and writes the process environment.
type OSEnvironment struct{}

// Lookup reads key from the process environment.
func (OSEnvironment) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// Set writes key into the process environment.
func (OSEnvironment) Set(key, value string) error { return os.Setenv(key, value) }

// MapEnvironment is an in-memory Environment.
type MapEnvironment map[string]string

// Lookup returns the stored value for key.
func (m MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores value under key.
func (m MapEnvironment) Set(key, value string) error {
	m[key] = value
	return nil
}

// Getenv returns the value for key, or "" when unset.
func Getenv(env Environment, key string) string {
	v, _ := env.Lookup(key)
	return v
}

// LoadFile applies the key=value pairs in path to env. Existing keys are kept
// unless override is set.
func LoadFile(env MutableEnvironment, path string, override bool) (int, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	applied := 0
	for key, value := range values {
		if !override {
			if _, exists := env.Lookup(key); exists {
				continue
			}
		}
		if err := env.Set(key, value); err != nil {
			return applied, fmt.Errorf("set %s: %w", key, err)
		}
		applied++
	}
	return applied, nil
}

// ReadSampleDefaults reads placeholder values from a sample configuration
// file. Entries with empty values are dropped.
func ReadSampleDefaults(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return map[string]string{}, err
	}
	defaults := make(map[string]string, len(values))
	for key, value := range values {
		if value == "" {
			continue
		}
		defaults[key] = value
	}
	return defaults, nil
}
