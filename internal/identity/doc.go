// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package identity manages the stable per-installation token that tags every
// log line produced by a log root. The token is minted once and persisted in
// a sentinel file, so it survives process restarts until the user deletes it.
package identity
