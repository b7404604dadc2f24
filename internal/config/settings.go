// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mia-platform/logship/internal/info"
)

const (
	defaultHandlers  = "stderr"
	defaultVerbosity = 20
)

var (
	// ErrSettingsNotValid reports unreadable or invalid settings.
	ErrSettingsNotValid = errors.New("settings not valid")
)

// Settings collects the logging pipeline configuration. Values come from an
// optional YAML file overlaid with environment variables, environment wins.
type Settings struct {
	// LogRoot is the directory holding the identity sentinel and the session
	// directories.
	LogRoot string `yaml:"logRoot" env:"LOGSHIP_LOG_ROOT"`

	// Handlers is the comma-separated ordered list of sink names to attach.
	Handlers string `yaml:"handlers" env:"LOGSHIP_HANDLERS"`

	// Verbosity is the combined verbosity value split between the terminal
	// and library thresholds.
	Verbosity int `yaml:"verbosity" env:"LOGSHIP_VERBOSITY"`

	// AllowCollection is the consent flag gating every upload of log content.
	AllowCollection bool `yaml:"allowCollection" env:"LOGSHIP_ALLOW_COLLECTION"`
}

// Load returns the Settings read from the YAML file at path, when not empty,
// overlaid with the environment variables.
func Load(path string) (Settings, error) {
	settings := defaultSettings()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return settings, fmt.Errorf("%w: %w", ErrSettingsNotValid, err)
		}

		if err := yaml.Unmarshal(content, &settings); err != nil {
			return settings, fmt.Errorf("%w: %w", ErrSettingsNotValid, err)
		}
	}

	if err := env.Parse(&settings); err != nil {
		return settings, fmt.Errorf("%w: %s", ErrSettingsNotValid, err.Error())
	}

	if err := settings.validate(); err != nil {
		return settings, err
	}

	return settings, nil
}

// validate checks the loaded values and reports invalid setups.
func (s Settings) validate() error {
	settingsErrors := make([]string, 0)
	if s.LogRoot == "" {
		settingsErrors = append(settingsErrors, "logRoot cannot be empty")
	}
	if s.Verbosity < 0 {
		settingsErrors = append(settingsErrors, "verbosity cannot be negative")
	}

	if len(settingsErrors) > 0 {
		return fmt.Errorf("%w: %s", ErrSettingsNotValid, strings.Join(settingsErrors, ", "))
	}

	return nil
}

func defaultSettings() Settings {
	return Settings{
		LogRoot:   defaultLogRoot(),
		Handlers:  defaultHandlers,
		Verbosity: defaultVerbosity,
	}
}

// defaultLogRoot places the log tree in the user cache directory, falling
// back to a relative directory when the cache location cannot be resolved.
func defaultLogRoot() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "logs"
	}

	return filepath.Join(cacheDir, info.AppName, "logs")
}
