// internal/appconfig/appconfig.go
// Package appconfig holds the CLI settings merged from flags, the optional
// JSON config file and defaults.
package appconfig

import (
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultLogFile is used when logFile is not configured.
	defaultLogFile = "ragnote.log"

	DefaultChatModel        = "llama-3.1-8b-instruct"
	DefaultMaxTokens        = 512
	DefaultSearchMaxResults = 3
	DefaultSearchMinScore   = 0.5
)

// Config represents the top-level application configuration.
type Config struct {
	Debug            bool    `json:"debug" mapstructure:"debug"`
	LogFile          string  `json:"logFile,omitempty" mapstructure:"logFile"`
	TimeoutSeconds   int     `json:"timeout,omitempty" mapstructure:"timeout"`
	ChatModel        string  `json:"chatModel,omitempty" mapstructure:"chatModel"`
	MaxTokens        int     `json:"maxTokens,omitempty" mapstructure:"maxTokens"`
	SearchMaxResults int     `json:"searchMaxResults,omitempty" mapstructure:"searchMaxResults"`
	SearchMinScore   float64 `json:"searchMinScore,omitempty" mapstructure:"searchMinScore"`
	ConfigPath       string  `json:"-" mapstructure:"-"`
}

// Defaults returns the settings used when neither flags nor the config file
// provide a value. Keys match the JSON config file.
func Defaults() map[string]any {
	return map[string]any{
		"debug":            false,
		"logFile":          defaultLogFile,
		"timeout":          int(defaultRequestTimeout.Seconds()),
		"chatModel":        DefaultChatModel,
		"maxTokens":        DefaultMaxTokens,
		"searchMaxResults": DefaultSearchMaxResults,
		"searchMinScore":   DefaultSearchMinScore,
	}
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// ChatModelName returns the configured chat model or the default.
func (c Config) ChatModelName() string {
	if m := strings.TrimSpace(c.ChatModel); m != "" {
		return m
	}
	return DefaultChatModel
}

// MaxTokenLimit returns the configured answer length or the default.
func (c Config) MaxTokenLimit() int {
	if c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

// SearchLimits returns the result count and minimum score used by the search
// command.
func (c Config) SearchLimits() (int, float64) {
	n, s := c.SearchMaxResults, c.SearchMinScore
	if n <= 0 {
		n = DefaultSearchMaxResults
	}
	if s < 0 {
		s = DefaultSearchMinScore
	}
	return n, s
}
