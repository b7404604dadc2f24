// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	shipCmdUsage = "ship"
	shipCmdShort = "upload the rotated log files left behind by previous sessions"
	shipCmdLong  = `Upload the rotated log files left behind by previous sessions.
	The session directory is scanned for files matching the rotation suffix
	pattern; every match is uploaded to the remote log store and moved to the
	local archive directory on success. Files that fail to upload stay in
	place and are retried on the next run.

	Nothing leaves the machine unless log collection is allowed in the
	settings.`
	shipCmdExample = `# Upload the rotated logs of this installation
	logship ship --settings settings.yaml`

	pipeCmdUsage = "pipe"
	pipeCmdShort = "forward standard input through the logging pipeline"
	pipeCmdLong  = `Forward standard input through the logging pipeline.
	The pipeline is configured from the settings like the host terminal would:
	every line read from standard input becomes one log record shipped to the
	configured handlers.`
	pipeCmdExample = `# Log the output of another process to the session file
	some-process | logship pipe --settings settings.yaml`

	identityCmdUsage = "identity"
	identityCmdShort = "print the stable identity of this installation"
	identityCmdLong  = `Print the stable identity of this installation.
	The identity is minted on first use and persisted in the log root, so it
	stays the same across sessions until the sentinel file is deleted.`
)

// ShipCmd returns the Cobra command that uploads rotated log files.
func ShipCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     shipCmdUsage,
		Short:   heredoc.Doc(shipCmdShort),
		Long:    heredoc.Doc(shipCmdLong),
		Example: heredoc.Doc(shipCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.executeShip(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// PipeCmd returns the Cobra command that forwards stdin through the pipeline.
func PipeCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     pipeCmdUsage,
		Short:   heredoc.Doc(pipeCmdShort),
		Long:    heredoc.Doc(pipeCmdLong),
		Example: heredoc.Doc(pipeCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.executePipe(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// IdentityCmd returns the Cobra command that prints the installation identity.
func IdentityCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:   identityCmdUsage,
		Short: heredoc.Doc(identityCmdShort),
		Long:  heredoc.Doc(identityCmdLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.executeIdentity(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
