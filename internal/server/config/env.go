package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading a
// local .env file first if one exists. Unset variables keep the current
// values; malformed numeric or duration values are ignored rather than
// fatal.
//
// Recognized variables:
//
//	RAGGATE_LISTEN_ADDR     bind address, e.g. ":8080"
//	RAGGATE_DATA_DIR        data directory
//	RAGGATE_ROLES           comma-separated role names
//	RAGGATE_SESSION_EXPIRY  duration, e.g. "1h"
//	RAGGATE_LOCKOUT_THRESHOLD  integer attempt count
//	RAGGATE_LOCKOUT_DURATION   duration, e.g. "10m"
//	RAGGATE_RATE_WINDOW        duration, e.g. "60s"
//	RAGGATE_RATE_MAX_REQUESTS  integer
//	RAGGATE_SWEEP_INTERVAL     duration, e.g. "10m"
func parseEnv(config *Config) {
	// .env is optional; plain environment variables still apply without it.
	_ = godotenv.Load()

	if v := os.Getenv("RAGGATE_LISTEN_ADDR"); v != "" {
		config.ListenAddr = v
	}
	if v := os.Getenv("RAGGATE_DATA_DIR"); v != "" {
		config.DataDir = v
	}
	if v := os.Getenv("RAGGATE_ROLES"); v != "" {
		roles := make([]string, 0)
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
		if len(roles) > 0 {
			config.Roles = roles
		}
	}

	envDuration(&config.SessionExpiry, "RAGGATE_SESSION_EXPIRY")
	envInt(&config.LockoutThreshold, "RAGGATE_LOCKOUT_THRESHOLD")
	envDuration(&config.LockoutDuration, "RAGGATE_LOCKOUT_DURATION")
	envDuration(&config.RateLimitWindow, "RAGGATE_RATE_WINDOW")
	envInt(&config.RateLimitMaxRequests, "RAGGATE_RATE_MAX_REQUESTS")
	envDuration(&config.SweepInterval, "RAGGATE_SWEEP_INTERVAL")
}

func envDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
