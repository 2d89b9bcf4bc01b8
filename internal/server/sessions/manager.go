// Package sessions implements the session manager: opaque bearer tokens
// mapped to durable session records with sliding expiry.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/avolkovs/raggate/internal/common"
	"github.com/avolkovs/raggate/internal/filex"
	"github.com/avolkovs/raggate/internal/logging"
	"github.com/avolkovs/raggate/internal/server/config"
)

// tokenBytes is the entropy carried by each session token before encoding.
const tokenBytes = 32

// Manager owns the session document. Safe for concurrent use; every
// mutation rewrites the whole document on disk before returning.
type Manager struct {
	mu       sync.Mutex
	path     string
	expiry   time.Duration
	sessions map[string]*Record
	logger   logging.Logger
	now      func() time.Time
}

// NewManager loads the session document at cfg.SessionsPath and immediately
// sweeps entries that expired while the process was down. A missing
// document just means no sessions yet.
func NewManager(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Manager, error) {
	m := &Manager{
		path:     cfg.SessionsPath(),
		expiry:   cfg.SessionExpiry,
		sessions: make(map[string]*Record),
		logger:   logger.With("component", "sessions"),
		now:      time.Now,
	}

	if err := filex.ReadJSONDocument(m.path, &m.sessions); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading session document: %w", err)
	}

	if _, err := m.Sweep(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// save rewrites the whole session document. Callers must hold m.mu.
func (m *Manager) save() error {
	if err := filex.WriteJSONDocument(m.path, m.sessions); err != nil {
		return &common.PersistenceError{Path: m.path, Err: err}
	}
	return nil
}

// Create mints a fresh token for the given username/role snapshot and
// stores it with a full expiry window. Tokens are never reused; a new
// login always produces a new session.
func (m *Manager) Create(ctx context.Context, username, role string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := common.MakeRandURLSafeString(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	m.sessions[token] = &Record{
		Username: username,
		Role:     role,
		Expiry:   m.now().Add(m.expiry),
	}
	if err := m.save(); err != nil {
		delete(m.sessions, token)
		return "", err
	}

	m.logger.Info(ctx, "session created", "username", username, "role", role)
	return token, nil
}

// Validate resolves a token to its (username, role) snapshot. A valid
// lookup slides the expiry forward by the full session lifetime. An
// expired session is deleted on the spot and reported as
// common.ErrSessionExpired; a token that was never issued (or already
// removed) is common.ErrSessionUnknown.
func (m *Manager) Validate(ctx context.Context, token string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return "", "", common.ErrSessionUnknown
	}

	if session.Expiry.Before(m.now()) {
		delete(m.sessions, token)
		if err := m.save(); err != nil {
			return "", "", err
		}
		m.logger.Info(ctx, "session expired", "username", session.Username)
		return "", "", common.ErrSessionExpired
	}

	session.Expiry = m.now().Add(m.expiry)
	if err := m.save(); err != nil {
		return "", "", err
	}
	return session.Username, session.Role, nil
}

// Logout removes the session. Returns common.ErrSessionUnknown when the
// token has no record; removing an already-removed session is not an
// anomaly worth more than that.
func (m *Manager) Logout(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return common.ErrSessionUnknown
	}

	delete(m.sessions, token)
	if err := m.save(); err != nil {
		return err
	}
	m.logger.Info(ctx, "session logged out", "username", session.Username)
	return nil
}

// Sweep drops every expired session and persists the pruned document if
// anything was removed. Returns the number of sessions dropped. Runs at
// load time and periodically while the server is up.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for token, session := range m.sessions {
		if !session.Expiry.After(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := m.save(); err != nil {
		return 0, err
	}
	m.logger.Info(ctx, "swept expired sessions", "count", removed)
	return removed, nil
}
