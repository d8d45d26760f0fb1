package controltower

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by controltower APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Backend   BackendConfig
	Assistant AssistantConfig
	Session   SessionConfig
	Metrics   MetricsConfig
	Audit     AuditConfig
}

/*
====================================
BACKEND CONFIG
====================================
*/

// BackendConfig locates the Control Tower REST backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

/*
====================================
ASSISTANT CONFIG
====================================
*/

// AssistantConfig locates the chat assistant service. The assistant rides
// the same middleware chain as the backend but lives at its own base URL
// and needs no bearer credential.
type AssistantConfig struct {
	BaseURL string
	Timeout time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// Session storage backends.
const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

// SessionConfig selects and parameterizes durable session storage.
type SessionConfig struct {
	Backend     string // "file" (default) or "redis"
	FilePath    string // record file; empty resolves under the user config dir
	RedisPrefix string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by controltower APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async session event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			Timeout: 15 * time.Second,
		},
		Assistant: AssistantConfig{
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			Backend:     SessionBackendFile,
			RedisPrefix: "ct",
		},
		Audit: AuditConfig{
			BufferSize: 64,
			DropIfFull: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Config holds no reference types today; the clone exists so callers
	// can never alias the guard's copy.
	return cfg
}

// Validate checks the configuration for contradictions before Build wires
// anything. It never mutates the receiver.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("backend base URL required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("backend base URL must be absolute")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend timeout must be positive")
	}

	if c.Assistant.BaseURL != "" {
		au, err := url.Parse(c.Assistant.BaseURL)
		if err != nil || au.Scheme == "" || au.Host == "" {
			return errors.New("assistant base URL must be absolute")
		}
	}

	switch c.Session.Backend {
	case "", SessionBackendFile, SessionBackendRedis:
	default:
		return errors.New("unknown session backend: " + c.Session.Backend)
	}

	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}

	return nil
}
