package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/avolkovs/raggate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string               bind address (e.g., ":8080")
//	-d string               data directory
//	-roles string           comma-separated role names
//	-session-expiry string  session lifetime, duration form (e.g., "1h")
//	-lockout-threshold int  failed attempts before lockout
//	-lockout-duration string  lockout hold time (e.g., "10m")
//	-rate-window string     rate-limit window (e.g., "60s")
//	-rate-max int           max requests per window
//	-sweep-interval string  expired-session sweep cadence (e.g., "10m")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-roles",
		"-session-expiry", "-lockout-threshold", "-lockout-duration",
		"-rate-window", "-rate-max", "-sweep-interval",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	roles := fs.String("roles", strings.Join(config.Roles, ","), "comma-separated role names")

	sessionExpiry := fs.String("session-expiry", config.SessionExpiry.String(), "session expiry duration")
	fs.IntVar(&config.LockoutThreshold, "lockout-threshold", config.LockoutThreshold, "failed attempts before lockout")
	lockoutDuration := fs.String("lockout-duration", config.LockoutDuration.String(), "lockout duration")
	rateWindow := fs.String("rate-window", config.RateLimitWindow.String(), "rate limit window")
	fs.IntVar(&config.RateLimitMaxRequests, "rate-max", config.RateLimitMaxRequests, "max requests per rate window")
	sweepInterval := fs.String("sweep-interval", config.SweepInterval.String(), "expired session sweep interval")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if parsed := splitRoles(*roles); len(parsed) > 0 {
		config.Roles = parsed
	}
	flagDuration(&config.SessionExpiry, *sessionExpiry)
	flagDuration(&config.LockoutDuration, *lockoutDuration)
	flagDuration(&config.RateLimitWindow, *rateWindow)
	flagDuration(&config.SweepInterval, *sweepInterval)
}

func splitRoles(s string) []string {
	roles := make([]string, 0)
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

func flagDuration(dst *time.Duration, v string) {
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}
