// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mia-platform/logship/internal/archive"
	"github.com/mia-platform/logship/internal/archive/blob"
	"github.com/mia-platform/logship/internal/config"
)

const (
	settingsFlagName  = "settings"
	settingsFlagShort = "c"
	settingsFlagUsage = "Path to a YAML file with the logging pipeline settings. Environment variables take precedence."
)

// flags collects the CLI options shared by the logship commands.
type flags struct {
	settingsPath string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.settingsPath, settingsFlagName, settingsFlagShort, "", settingsFlagUsage)
}

// toOptions builds an options instance from the parsed flags.
func (f *flags) toOptions(cmd *cobra.Command) (*options, error) {
	settings, err := config.Load(f.settingsPath)
	if err != nil {
		return nil, err
	}

	return &options{
		settings: settings,
		input:    cmd.InOrStdin(),
		output:   cmd.OutOrStdout(),
		uploaderGetter: func() (archive.Uploader, error) {
			return blob.NewUploader()
		},
	}, nil
}
