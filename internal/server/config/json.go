package config

import (
	"encoding/json"
	"os"

	"github.com/avolkovs/raggate/internal/flagx"
	"github.com/avolkovs/raggate/internal/timex"
)

// jsonConfig is the DTO used only for reading JSON configuration files.
// Duration fields use timex.Duration so both "10m" strings and integer
// nanoseconds parse. After unmarshalling, set fields are copied into the
// runtime Config.
type jsonConfig struct {
	ListenAddr           *string         `json:"listen_addr"`
	DataDir              *string         `json:"data_dir"`
	Roles                []string        `json:"roles"`
	SessionExpiry        *timex.Duration `json:"session_expiry"`
	LockoutThreshold     *int            `json:"lockout_threshold"`
	LockoutDuration      *timex.Duration `json:"lockout_duration"`
	RateLimitWindow      *timex.Duration `json:"rate_limit_window"`
	RateLimitMaxRequests *int            `json:"rate_limit_max_requests"`
	SweepInterval        *timex.Duration `json:"sweep_interval"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. Fields absent from the file keep
// their current values. An unreadable or malformed file panics: a config
// file that was asked for but cannot be used is a startup error.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != nil {
		config.ListenAddr = *c.ListenAddr
	}
	if c.DataDir != nil {
		config.DataDir = *c.DataDir
	}
	if len(c.Roles) > 0 {
		config.Roles = c.Roles
	}
	if c.SessionExpiry != nil {
		config.SessionExpiry = c.SessionExpiry.Duration
	}
	if c.LockoutThreshold != nil {
		config.LockoutThreshold = *c.LockoutThreshold
	}
	if c.LockoutDuration != nil {
		config.LockoutDuration = c.LockoutDuration.Duration
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.RateLimitMaxRequests != nil {
		config.RateLimitMaxRequests = *c.RateLimitMaxRequests
	}
	if c.SweepInterval != nil {
		config.SweepInterval = c.SweepInterval.Duration
	}
}
