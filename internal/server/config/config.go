// Package config handles configuration for the raggate server, including
// defaults, JSON overlay, environment variables (.env), and command-line
// flags, applied in that order.
package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the raggate server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - DataDir: directory holding the durable JSON documents and role
//     document folders.
//   - Roles: the fixed set of valid role names. Shared by credential
//     validation and document visibility scoping.
//   - SessionExpiry: sliding session lifetime; every successful validation
//     pushes expiry forward by this amount.
//   - LockoutThreshold / LockoutDuration: failed-attempt count that locks
//     an account and how long the lock holds.
//   - RateLimitWindow / RateLimitMaxRequests: sliding-window chat limiter.
//   - SweepInterval: how often expired sessions are swept while running.
type Config struct {
	ListenAddr           string
	DataDir              string
	Roles                []string
	SessionExpiry        time.Duration
	LockoutThreshold     int
	LockoutDuration      time.Duration
	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
	SweepInterval        time.Duration
}

// LoadDefaults populates Config with the stock development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DataDir = "data"
	c.Roles = []string{"finance", "engineering", "admin"}
	c.SessionExpiry = time.Hour
	c.LockoutThreshold = 5
	c.LockoutDuration = 10 * time.Minute
	c.RateLimitWindow = 60 * time.Second
	c.RateLimitMaxRequests = 10
	c.SweepInterval = 10 * time.Minute
}

// UsersPath returns the location of the durable user document.
func (c *Config) UsersPath() string {
	return filepath.Join(c.DataDir, "users.json")
}

// SessionsPath returns the location of the durable session document.
func (c *Config) SessionsPath() string {
	return filepath.Join(c.DataDir, "sessions.json")
}

// DocumentsDir returns the root of the per-role document folders.
func (c *Config) DocumentsDir() string {
	return filepath.Join(c.DataDir, "documents")
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (including .env), and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
