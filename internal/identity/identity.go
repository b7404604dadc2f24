// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package identity

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mia-platform/logship/internal/logger"
)

const (
	loggerName = "logship:identity"

	// sentinelName is the name of the file inside the log root that pins the
	// installation identity across process restarts.
	sentinelName = ".logid"

	dirPermissions  = 0o755
	filePermissions = 0o600
)

var (
	// ErrStorage wraps every filesystem failure while reading or creating the
	// identity sentinel. The process cannot continue without an identity.
	ErrStorage = errors.New("identity storage")
)

// Store persists and retrieves the installation identity of a log root.
type Store struct {
	root string
}

// NewStore returns a Store operating on the given log root directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// SentinelPath returns the path of the identity sentinel file.
func (s *Store) SentinelPath() string {
	return filepath.Join(s.root, sentinelName)
}

// GetOrCreate returns the identity stored in the log root, minting and
// persisting a new one on first run. The log root directory is created if
// missing. Exactly one identity exists per log root until the sentinel file
// is deleted.
func (s *Store) GetOrCreate(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	if err := os.MkdirAll(s.root, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	sentinel := s.SentinelPath()
	content, err := os.ReadFile(sentinel)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		id := uuid.NewString()
		log.Debug("identity sentinel not found, minting a new one", "path", sentinel)
		if err := os.WriteFile(sentinel, []byte(id+"\n"), filePermissions); err != nil {
			return "", fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return id, nil
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	id, _, _ := strings.Cut(string(content), "\n")
	id = strings.TrimRight(id, "\r")
	log.Debug("identity sentinel found", "path", sentinel, "identity", id)
	return id, nil
}
