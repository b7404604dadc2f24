// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mia-platform/logship/internal/logdir"
	"github.com/mia-platform/logship/internal/logger"
)

const (
	loggerName = "logship:archive"

	// DefaultRotationPattern matches the date suffix that the rotating file
	// sink appends on rollover.
	DefaultRotationPattern = `\.log\.20[2-3][0-9]-[0-2][0-9]-[0-3][0-9]_[0-2][0-9]`
)

var (
	// ErrArchive wraps filesystem failures that prevent the archive run from
	// starting at all. Per-file upload and rename failures are only logged.
	ErrArchive = errors.New("archive")
)

// Uploader sends a local file to the remote log store under the given object
// key. Implementations must overwrite existing objects so that retried
// uploads stay idempotent.
type Uploader interface {
	Upload(ctx context.Context, filePath, objectKey string) error
}

// Archiver scans a session directory for rotated log files, uploads each one,
// and moves the uploaded files into the local archive subdirectory. Files
// that fail to upload are left in place and picked up again on the next run,
// giving at-least-once delivery.
type Archiver struct {
	sessionDir string
	identity   string
	pattern    *regexp.Regexp
	uploader   Uploader
	enabled    bool
}

// New returns an Archiver for the given session directory using the default
// rotation pattern. The enabled flag is the user consent gate: when false no
// log content leaves the machine.
func New(sessionDir, identity string, uploader Uploader, enabled bool) *Archiver {
	return &Archiver{
		sessionDir: sessionDir,
		identity:   identity,
		pattern:    regexp.MustCompile(DefaultRotationPattern),
		uploader:   uploader,
		enabled:    enabled,
	}
}

// WithPattern replaces the rotation pattern used to match candidate files.
func (a *Archiver) WithPattern(pattern *regexp.Regexp) *Archiver {
	a.pattern = pattern
	return a
}

// Run performs one archive pass: scan, upload, move. Every matched file is an
// independent failure domain, an error on one file never aborts the others.
func (a *Archiver) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(loggerName)
	if !a.enabled {
		log.Info("log collection not allowed, skipping upload")
		return nil
	}

	archiveDir := filepath.Join(a.sessionDir, logdir.ArchiveDirName)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	entries, err := os.ReadDir(a.sessionDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArchive, err)
	}

	log.Info("start uploading rotated logs", "directory", a.sessionDir)
	for _, entry := range entries {
		if entry.IsDir() || !a.pattern.MatchString(entry.Name()) {
			continue
		}

		name := entry.Name()
		filePath := filepath.Join(a.sessionDir, name)
		// The identity qualifies the object key so that two installations
		// rotating a file with the same name never overwrite each other.
		objectKey := a.identity + "/" + name
		if err := a.uploader.Upload(ctx, filePath, objectKey); err != nil {
			log.Error("cannot upload rotated log", "file", name, "error", err)
			continue
		}

		if err := os.Rename(filePath, filepath.Join(archiveDir, name)); err != nil {
			log.Error("cannot archive uploaded log", "file", name, "error", err)
			continue
		}

		log.Debug("rotated log uploaded and archived", "file", name, "key", objectKey)
	}
	log.Info("rotated logs upload finished")

	return nil
}
