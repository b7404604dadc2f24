// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import "time"

// Level is the numeric severity of a record. Values are spaced by tens so
// that a combined verbosity setting can be split between terminal and
// library thresholds.
type Level int

const (
	DebugLevel    Level = 10
	InfoLevel     Level = 20
	WarningLevel  Level = 30
	ErrorLevel    Level = 40
	CriticalLevel Level = 50
)

// Name returns the level name, or an empty string for unknown values.
func (l Level) Name() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	}

	return ""
}

// SplitVerbosity splits a combined verbosity value in the terminal threshold
// (rounded down to the nearest ten) and the library threshold (rounded up).
// A single configuration value this way lets the application log at finer
// granularity than third-party code.
func SplitVerbosity(verbosity int) (Level, Level) {
	terminal := verbosity / 10 * 10
	library := (verbosity + 9) / 10 * 10
	return Level(terminal), Level(library)
}

// Record is a single log event, immutable once formatted.
type Record struct {
	Time      time.Time
	Level     Level
	Name      string
	FuncName  string
	Line      int
	Message   string
	Exception string
}
