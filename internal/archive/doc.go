// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package archive ships rotated log files from a session directory to the
// remote log store and moves them into the local archive subdirectory once
// uploaded. Delivery is at-least-once and relies on the overwrite semantics
// of the remote store for deduplication.
package archive
