// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logship/internal/archive"
	fakearchive "github.com/mia-platform/logship/internal/archive/fake"
	"github.com/mia-platform/logship/internal/config"
	"github.com/mia-platform/logship/internal/identity"
	"github.com/mia-platform/logship/internal/logdir"
	"github.com/mia-platform/logship/internal/termlog"
)

const testIdentity = "test-identity"

// seedLogRoot prepares a log root with a pinned identity and the given files
// already present in the session directory.
func seedLogRoot(t *testing.T, rotatedFiles ...string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".logid"), []byte(testIdentity+"\n"), 0o600))

	sessionDir := filepath.Join(root, testIdentity)
	require.NoError(t, os.MkdirAll(sessionDir, 0o755))
	for _, name := range rotatedFiles {
		require.NoError(t, os.WriteFile(filepath.Join(sessionDir, name), []byte("old content\n"), 0o600))
	}

	return root
}

func TestExecuteShip(t *testing.T) {
	t.Parallel()

	t.Run("uploads and archives rotated files", func(t *testing.T) {
		t.Parallel()

		root := seedLogRoot(t, "1600000000.log.2023-01-01_00")
		uploader := fakearchive.NewFakeUploader(t)
		opts := &options{
			settings:       config.Settings{LogRoot: root, AllowCollection: true},
			uploaderGetter: func() (archive.Uploader, error) { return uploader, nil },
		}

		require.NoError(t, opts.executeShip(context.Background()))
		assert.Equal(t, []string{testIdentity + "/1600000000.log.2023-01-01_00"}, uploader.UploadedKeys)
		assert.FileExists(t, filepath.Join(root, testIdentity, logdir.ArchiveDirName, "1600000000.log.2023-01-01_00"))
	})

	t.Run("consent disabled never builds the uploader", func(t *testing.T) {
		t.Parallel()

		root := seedLogRoot(t, "1600000000.log.2023-01-01_00")
		opts := &options{
			settings: config.Settings{LogRoot: root},
			uploaderGetter: func() (archive.Uploader, error) {
				t.Fatal("uploader must not be built without consent")
				return nil, nil
			},
		}

		require.NoError(t, opts.executeShip(context.Background()))
		assert.FileExists(t, filepath.Join(root, testIdentity, "1600000000.log.2023-01-01_00"))
	})

	t.Run("uploader construction failure aborts the run", func(t *testing.T) {
		t.Parallel()

		opts := &options{
			settings:       config.Settings{LogRoot: seedLogRoot(t), AllowCollection: true},
			uploaderGetter: func() (archive.Uploader, error) { return nil, assert.AnError },
		}

		assert.ErrorIs(t, opts.executeShip(context.Background()), assert.AnError)
	})
}

func TestExecutePipe(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	opts := &options{
		settings: config.Settings{LogRoot: t.TempDir(), Handlers: "noop"},
		input:    strings.NewReader("first line\nsecond line\n"),
		configureFunc: func(context.Context, config.Settings) (*termlog.Logger, error) {
			termLogger := termlog.New()
			termLogger.Attach(termlog.NewStreamSink(buffer), termlog.NewFormatter(termlog.Context{Identity: testIdentity, SessionID: "123"}))
			return termLogger, nil
		},
	}

	require.NoError(t, opts.executePipe(context.Background()))

	lines := strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "|"+pipeLoggerName+"|pipe|0|first line")
	assert.Contains(t, lines[1], "|"+pipeLoggerName+"|pipe|0|second line")
}

func TestExecutePipeConfigureError(t *testing.T) {
	t.Parallel()

	opts := &options{
		settings: config.Settings{LogRoot: t.TempDir(), Handlers: "noop"},
		input:    strings.NewReader(""),
		configureFunc: func(context.Context, config.Settings) (*termlog.Logger, error) {
			return nil, assert.AnError
		},
	}

	assert.ErrorIs(t, opts.executePipe(context.Background()), assert.AnError)
}

func TestExecuteIdentity(t *testing.T) {
	t.Parallel()

	t.Run("prints the pinned identity", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		opts := &options{
			settings: config.Settings{LogRoot: seedLogRoot(t)},
			output:   buffer,
		}

		require.NoError(t, opts.executeIdentity(context.Background()))
		assert.Equal(t, testIdentity+"\n", buffer.String())
	})

	t.Run("storage failure is propagated", func(t *testing.T) {
		t.Parallel()

		blocked := filepath.Join(t.TempDir(), "blocked")
		require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0o600))

		opts := &options{
			settings: config.Settings{LogRoot: filepath.Join(blocked, "logs")},
			output:   new(bytes.Buffer),
		}

		assert.ErrorIs(t, opts.executeIdentity(context.Background()), identity.ErrStorage)
	})
}
