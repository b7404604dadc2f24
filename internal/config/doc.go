// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config loads the logging pipeline settings from an optional YAML
// file and the process environment.
package config
