// Package docs defines the contracts the auth core is wired against on the
// retrieval side: role-scoped document listing and the chat responder.
// Embedding, vector search, and prompt construction live behind these
// interfaces and are out of scope here.
package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/avolkovs/raggate/internal/common"
	"github.com/avolkovs/raggate/internal/filex"
	"github.com/avolkovs/raggate/internal/logging"
	"github.com/avolkovs/raggate/internal/server/config"
)

// Store lists the documents visible to a role.
type Store interface {
	ListDocuments(ctx context.Context, role string) ([]string, error)
}

// Responder produces a chat answer scoped to the caller's role.
type Responder interface {
	Respond(ctx context.Context, role, query string) (string, error)
}

// DirStore is a Store backed by per-role folders under a root directory
// (documents/<role>/*.txt), matching the ingestion layout. Titles are the
// file names with the extension stripped and underscores restored to
// spaces.
type DirStore struct {
	root   string
	roles  []string
	logger logging.Logger
}

// NewDirStore creates the per-role folders if they are missing.
func NewDirStore(cfg *config.Config, logger logging.Logger) (*DirStore, error) {
	root := cfg.DocumentsDir()
	for _, role := range cfg.Roles {
		if err := filex.EnsureDir(filepath.Join(root, role)); err != nil {
			return nil, err
		}
	}
	return &DirStore{
		root:   root,
		roles:  cfg.Roles,
		logger: logger.With("component", "docs"),
	}, nil
}

func (s *DirStore) ListDocuments(ctx context.Context, role string) ([]string, error) {
	if !slices.Contains(s.roles, role) {
		s.logger.Warn(ctx, "document listing rejected: invalid role", "role", role)
		return nil, common.ErrInvalidRole
	}

	entries, err := os.ReadDir(filepath.Join(s.root, role))
	if err != nil {
		return nil, fmt.Errorf("listing documents for role %s: %w", role, err)
	}

	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		titles = append(titles, strings.ReplaceAll(name, "_", " "))
	}
	slices.Sort(titles)
	return titles, nil
}

// StaticResponder is a stand-in Responder used until a retrieval backend is
// plugged in. It answers with the documents visible to the caller's role.
type StaticResponder struct {
	store Store
}

func NewStaticResponder(store Store) *StaticResponder {
	return &StaticResponder{store: store}
}

func (r *StaticResponder) Respond(ctx context.Context, role, query string) (string, error) {
	titles, err := r.store.ListDocuments(ctx, role)
	if err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return fmt.Sprintf("No documents are available for the %s role yet.", role), nil
	}
	return fmt.Sprintf("Found %d documents available to the %s role: %s.",
		len(titles), role, strings.Join(titles, ", ")), nil
}
