// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ArchiveDirName is the name of the subdirectory that holds rotated log
	// files after a successful upload.
	ArchiveDirName = "archive"

	dirPermissions = 0o755
)

var (
	// ErrLogDirectory wraps filesystem failures while laying out the log tree.
	ErrLogDirectory = errors.New("log directory")
)

// Manager lays out the on-disk log tree rooted at a single log root:
// one session directory per identity, each with an archive subdirectory.
type Manager struct {
	root string
}

// NewManager returns a Manager operating on the given log root directory.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Root returns the log root path.
func (m *Manager) Root() string {
	return m.root
}

// SessionDir ensures that the session directory for identity exists and
// returns its path. Repeated calls with the same identity are idempotent.
func (m *Manager) SessionDir(identity string) (string, error) {
	dir := filepath.Join(m.root, identity)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLogDirectory, err)
	}

	return dir, nil
}

// ArchiveDir ensures that the archive subdirectory for identity exists and
// returns its path.
func (m *Manager) ArchiveDir(identity string) (string, error) {
	sessionDir, err := m.SessionDir(identity)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(sessionDir, ArchiveDirName)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLogDirectory, err)
	}

	return dir, nil
}
