// Package creds implements the credential store: durable user records,
// password verification, and the failed-attempt lockout policy.
package creds

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/avolkovs/raggate/internal/common"
	"github.com/avolkovs/raggate/internal/filex"
	"github.com/avolkovs/raggate/internal/logging"
	"github.com/avolkovs/raggate/internal/server/config"
)

// SessionIssuer mints a session token for a freshly authenticated user.
// Satisfied by *sessions.Manager.
type SessionIssuer interface {
	Create(ctx context.Context, username, role string) (string, error)
}

// Store owns the user document. It is safe for concurrent use; every
// mutation rewrites the whole document on disk before returning.
type Store struct {
	mu               sync.Mutex
	path             string
	roles            []string
	lockoutThreshold int
	lockoutDuration  time.Duration
	users            map[string]*UserRecord
	sessions         SessionIssuer
	logger           logging.Logger
	now              func() time.Time
}

// defaultAccounts are seeded on first run, one per stock role. The
// passwords are development defaults and should be rotated immediately on
// any real deployment.
var defaultAccounts = []struct {
	username string
	password string
	role     string
}{
	{"admin", "admin123", "admin"},
	{"finance_user", "finance123", "finance"},
	{"engineering_user", "engineering123", "engineering"},
}

// NewStore loads the user document at cfg.UsersPath, bootstrapping the
// default accounts if the document does not exist yet.
func NewStore(ctx context.Context, cfg *config.Config, issuer SessionIssuer, logger logging.Logger) (*Store, error) {
	s := &Store{
		path:             cfg.UsersPath(),
		roles:            cfg.Roles,
		lockoutThreshold: cfg.LockoutThreshold,
		lockoutDuration:  cfg.LockoutDuration,
		users:            make(map[string]*UserRecord),
		sessions:         issuer,
		logger:           logger.With("component", "creds"),
		now:              time.Now,
	}

	err := filex.ReadJSONDocument(s.path, &s.users)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, os.ErrNotExist):
		if err := s.bootstrap(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("loading user document: %w", err)
	}
}

func (s *Store) bootstrap(ctx context.Context) error {
	for _, acc := range defaultAccounts {
		salt, err := GenerateSalt()
		if err != nil {
			return fmt.Errorf("generating salt: %w", err)
		}
		s.users[acc.username] = &UserRecord{
			PasswordHash: HashPassword(acc.password, salt),
			Salt:         salt,
			Role:         acc.role,
		}
	}
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info(ctx, "bootstrapped default accounts", "count", len(s.users))
	return nil
}

// save rewrites the whole user document. Callers must hold s.mu.
func (s *Store) save() error {
	if err := filex.WriteJSONDocument(s.path, s.users); err != nil {
		return &common.PersistenceError{Path: s.path, Err: err}
	}
	return nil
}

// checkLockout reports whether the account is currently locked. Once the
// lockout window has elapsed, the failure counter is reset here as a side
// effect, not only on the next successful login. Callers must hold s.mu.
func (s *Store) checkLockout(username string) (bool, error) {
	user, ok := s.users[username]
	if !ok {
		return false, nil
	}
	if user.FailedAttempts < s.lockoutThreshold || user.LastAttempt == nil {
		return false, nil
	}
	if s.now().Sub(*user.LastAttempt) < s.lockoutDuration {
		return true, nil
	}
	user.FailedAttempts = 0
	return false, s.save()
}

// Authenticate verifies the username/password pair and, on success, issues
// a new session and returns its token along with the user's role.
//
// Failures map onto the error taxonomy: common.ErrAccountLocked while the
// lockout window holds (the password is never checked for a locked
// account), common.ErrInvalidCredentials for unknown users and wrong
// passwords alike.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.checkLockout(username)
	if err != nil {
		return "", "", err
	}
	if locked {
		s.logger.Warn(ctx, "authentication rejected: account locked", "username", username)
		return "", "", common.ErrAccountLocked
	}

	user, ok := s.users[username]
	if !ok {
		s.logger.Warn(ctx, "authentication failed: unknown user", "username", username)
		return "", "", common.ErrInvalidCredentials
	}

	if !verifyPassword(user.PasswordHash, password, user.Salt) {
		now := s.now()
		user.FailedAttempts++
		user.LastAttempt = &now
		if err := s.save(); err != nil {
			return "", "", err
		}
		s.logger.Warn(ctx, "authentication failed: incorrect password",
			"username", username, "failed_attempts", user.FailedAttempts)
		return "", "", common.ErrInvalidCredentials
	}

	user.FailedAttempts = 0
	if err := s.save(); err != nil {
		return "", "", err
	}

	token, err := s.sessions.Create(ctx, username, user.Role)
	if err != nil {
		return "", "", err
	}

	s.logger.Info(ctx, "user authenticated", "username", username, "role", user.Role)
	return token, user.Role, nil
}

// AddUser creates a new account with a fresh salt and zeroed counters.
// Fails with common.ErrDuplicateUser or common.ErrInvalidRole without
// touching stored state.
func (s *Store) AddUser(ctx context.Context, username, password, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		s.logger.Warn(ctx, "add user rejected: duplicate", "username", username)
		return common.ErrDuplicateUser
	}
	if !slices.Contains(s.roles, role) {
		s.logger.Warn(ctx, "add user rejected: invalid role", "username", username, "role", role)
		return common.ErrInvalidRole
	}

	salt, err := GenerateSalt()
	if err != nil {
		return fmt.Errorf("generating salt: %w", err)
	}
	s.users[username] = &UserRecord{
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		Role:         role,
	}
	if err := s.save(); err != nil {
		// failed mutations leave no trace in memory either
		delete(s.users, username)
		return err
	}

	s.logger.Info(ctx, "user added", "username", username, "role", role)
	return nil
}

// ListUsers returns a username→role projection. Hashes and salts never
// leave the store.
func (s *Store) ListUsers(ctx context.Context) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.users))
	for name, user := range s.users {
		out[name] = user.Role
	}
	return out
}
