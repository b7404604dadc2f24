// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package version resolves the source control revision of the running binary.
package version

import "runtime/debug"

const shortHashLength = 8

// Revision returns the short revision of the binary formatted as "sha:<hash>"
// reading the VCS metadata embedded at build time. Detection is best-effort:
// a binary built outside a repository yields an empty string and never an
// error.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	return revisionFromSettings(info.Settings)
}

func revisionFromSettings(settings []debug.BuildSetting) string {
	for _, setting := range settings {
		if setting.Key != "vcs.revision" || setting.Value == "" {
			continue
		}

		revision := setting.Value
		if len(revision) > shortHashLength {
			revision = revision[:shortHashLength]
		}

		return "sha:" + revision
	}

	return ""
}
