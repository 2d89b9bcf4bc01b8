package creds

import "time"

// UserRecord is the durable form of one account. The username is the key of
// the user document mapping and does not repeat inside the record.
//
// LastAttempt is nil until the first failed login.
type UserRecord struct {
	PasswordHash   string     `json:"password_hash"`
	Salt           string     `json:"salt"`
	Role           string     `json:"role"`
	FailedAttempts int        `json:"failed_attempts"`
	LastAttempt    *time.Time `json:"last_attempt"`
}
