// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mia-platform/logship/internal/archive"
	"github.com/mia-platform/logship/internal/bootstrap"
	"github.com/mia-platform/logship/internal/config"
	"github.com/mia-platform/logship/internal/identity"
	"github.com/mia-platform/logship/internal/logdir"
	"github.com/mia-platform/logship/internal/termlog"
)

const pipeLoggerName = "logship:pipe"

// options configures the execution of the logship commands.
type options struct {
	settings       config.Settings
	input          io.Reader
	output         io.Writer
	uploaderGetter func() (archive.Uploader, error)

	// configureFunc can be overridden for testing purposes.
	configureFunc func(context.Context, config.Settings) (*termlog.Logger, error)
}

// executeShip runs one archive pass over the session directory, uploading
// every rotated log file left behind by previous sessions.
func (o *options) executeShip(ctx context.Context) error {
	id, err := identity.NewStore(o.settings.LogRoot).GetOrCreate(ctx)
	if err != nil {
		return err
	}

	sessionDir, err := logdir.NewManager(o.settings.LogRoot).SessionDir(id)
	if err != nil {
		return err
	}

	var uploader archive.Uploader
	enabled := o.settings.AllowCollection
	if enabled {
		// An explicit ship run fails loud on a broken uploader setup, unlike
		// the best-effort pre-flight at logging startup.
		if uploader, err = o.uploaderGetter(); err != nil {
			return err
		}
	}

	return archive.New(sessionDir, id, uploader, enabled).Run(ctx)
}

// executePipe configures the logging pipeline and forwards every line read
// from the input through it, one record per line.
func (o *options) executePipe(ctx context.Context) error {
	configureFunc := o.configureFunc
	if configureFunc == nil {
		configureFunc = bootstrap.Configure
	}

	termLogger, err := configureFunc(ctx, o.settings)
	if err != nil {
		return err
	}
	defer func() { _ = termLogger.Close() }()

	log := termLogger.Named(pipeLoggerName).WithFuncName("pipe")
	scanner := bufio.NewScanner(o.input)
	for scanner.Scan() {
		log.Infof("%s", scanner.Text())
	}

	return scanner.Err()
}

// executeIdentity prints the installation identity, minting it on first run.
func (o *options) executeIdentity(ctx context.Context) error {
	id, err := identity.NewStore(o.settings.LogRoot).GetOrCreate(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(o.output, id)
	return nil
}
