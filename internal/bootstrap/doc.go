// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package bootstrap wires the terminal logging pipeline at process startup:
// identity resolution, session directory layout, pre-flight flush of rotated
// logs, and sink attachment from the configured handler list.
package bootstrap
