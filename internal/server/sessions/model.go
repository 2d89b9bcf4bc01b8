package sessions

import "time"

// Record is the durable form of one session. Username and role are
// snapshots taken at issuance; a role change does not propagate into live
// sessions until the user logs in again.
type Record struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Expiry   time.Time `json:"expiry"`
}
