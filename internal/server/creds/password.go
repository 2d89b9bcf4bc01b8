package creds

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/avolkovs/raggate/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// hashIterations is deliberately high so brute-forcing a leaked
	// document stays expensive.
	hashIterations = 100_000
	saltBytes      = 16
)

// GenerateSalt returns a fresh random hex salt for a new account. Salts are
// generated once at creation and never change.
func GenerateSalt() (string, error) {
	return common.MakeRandHexString(saltBytes)
}

// HashPassword derives a hex-encoded PBKDF2-HMAC-SHA256 key from the
// password and salt. Deterministic: the same inputs always produce the same
// hash, which is what verification relies on.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

func verifyPassword(storedHash, password, salt string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(candidate)) == 1
}
