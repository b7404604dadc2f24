// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package termlog implements the terminal log pipeline: single line,
// pipe-delimited records prefixed with the installation identity and session
// id, fanned out to one or more sinks. The file sink rotates hourly leaving
// date-suffixed files behind for the archive uploader to collect.
package termlog
