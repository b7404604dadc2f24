// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	azlog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"

	"github.com/mia-platform/logship/internal/archive"
	"github.com/mia-platform/logship/internal/archive/blob"
	"github.com/mia-platform/logship/internal/config"
	"github.com/mia-platform/logship/internal/identity"
	"github.com/mia-platform/logship/internal/logdir"
	"github.com/mia-platform/logship/internal/logger"
	"github.com/mia-platform/logship/internal/termlog"
	"github.com/mia-platform/logship/internal/version"
)

const (
	loggerName = "logship:bootstrap"

	// lineFormatDescription is the pipe-free description of the wire format
	// logged once at startup for downstream tooling.
	lineFormatDescription = "LEVELCHAR-version-identity-sessionId-timestamp-name-funcName-line-message"
)

var (
	// ErrBootstrap wraps failures while wiring the logging pipeline.
	ErrBootstrap = errors.New("logging bootstrap")
)

// UploaderFactory builds the remote uploader used by the pre-flight archive
// run of the file handler.
type UploaderFactory func() (archive.Uploader, error)

// Configure builds the terminal logging pipeline described by settings:
// resolve the installation identity, split the verbosity, attach a sink per
// configured handler, and flush any previously rotated logs before opening
// the session log file. Every call builds an independent pipeline, there is
// no reconfiguration path for an existing one.
func Configure(ctx context.Context, settings config.Settings) (*termlog.Logger, error) {
	return configure(ctx, settings, time.Now, func() (archive.Uploader, error) {
		return blob.NewUploader()
	})
}

func configure(ctx context.Context, settings config.Settings, now func() time.Time, newUploader UploaderFactory) (*termlog.Logger, error) {
	log := logger.FromContext(ctx).WithName(loggerName)
	sessionID := strconv.FormatInt(now().Unix(), 10)

	id, err := identity.NewStore(settings.LogRoot).GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	formatContext := termlog.Context{
		Identity:  id,
		SessionID: sessionID,
		Version:   version.Revision(),
	}
	terminalLevel, libraryLevel := termlog.SplitVerbosity(settings.Verbosity)

	termLogger := termlog.New()
	termLogger.SetLevels(terminalLevel, libraryLevel)

	handlers, unknown := termlog.ParseHandlers(settings.Handlers)
	for _, name := range unknown {
		log.Debug("unknown log handler", "name", name)
	}

	for _, handler := range handlers {
		var sink termlog.Sink
		switch handler {
		case termlog.HandlerStdout:
			sink = termlog.NewStreamSink(os.Stdout)
		case termlog.HandlerStderr:
			sink = termlog.NewStreamSink(os.Stderr)
		case termlog.HandlerNoop:
			sink = termlog.NewNoopSink()
		case termlog.HandlerFile:
			fileSink, err := newSessionFileSink(ctx, settings, id, sessionID, newUploader)
			if err != nil {
				return nil, err
			}
			sink = fileSink
		}

		termLogger.Attach(sink, termlog.NewFormatter(formatContext))
	}

	applyLibraryVerbosity(ctx, libraryLevel)

	boot := termLogger.Named(loggerName)
	boot.Infof("logging configuration finished")
	boot.Infof("logging set to %s", settings.Handlers)
	boot.Infof("verbosity set to %d", libraryLevel)
	boot.Infof("FORMAT: %s", lineFormatDescription)

	return termLogger, nil
}

// newSessionFileSink prepares the session directory, opportunistically
// flushes rotated logs left behind by previous sessions, and opens the log
// file of the new session.
func newSessionFileSink(ctx context.Context, settings config.Settings, id, sessionID string, newUploader UploaderFactory) (termlog.Sink, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	sessionDir, err := logdir.NewManager(settings.LogRoot).SessionDir(id)
	if err != nil {
		return nil, err
	}

	runArchivePreFlight(ctx, settings, sessionDir, id, newUploader, log)

	sink, err := termlog.NewFileSink(filepath.Join(sessionDir, sessionID+".log"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBootstrap, err)
	}

	return sink, nil
}

// runArchivePreFlight uploads previously rotated logs before the new session
// starts writing. The whole pass is best-effort: any failure is logged and
// the files stay in place for the next run.
func runArchivePreFlight(ctx context.Context, settings config.Settings, sessionDir, id string, newUploader UploaderFactory, log logger.Logger) {
	var uploader archive.Uploader
	enabled := settings.AllowCollection
	if enabled {
		remote, err := newUploader()
		if err != nil {
			log.Error("cannot create the log uploader, rotated logs will be retried next run", "error", err)
			enabled = false
		}
		uploader = remote
	}

	if err := archive.New(sessionDir, id, uploader, enabled).Run(ctx); err != nil {
		log.Error("archive pre-flight failed", "error", err)
	}
}

// applyLibraryVerbosity filters the noisy third-party SDK logging: the Azure
// SDK transport events reach the diagnostic logger only when the library
// threshold allows debug records.
func applyLibraryVerbosity(ctx context.Context, libraryLevel termlog.Level) {
	if libraryLevel > termlog.DebugLevel {
		azlog.SetListener(nil)
		return
	}

	log := logger.FromContext(ctx).WithName("azcore")
	azlog.SetEvents(azlog.EventRequest, azlog.EventResponse, azlog.EventRetryPolicy)
	azlog.SetListener(func(event azlog.Event, message string) {
		log.Debug(message, "event", string(event))
	})
}
