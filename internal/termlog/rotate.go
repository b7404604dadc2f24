// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	// RotationSuffixLayout is the time layout appended to a log file name
	// when the file sink rolls over to a new hour.
	RotationSuffixLayout = "2006-01-02_15"

	logFilePermissions = 0o600
)

var _ Sink = &FileSink{}

// FileSink appends lines to a log file and rotates it hourly: when a write
// crosses an hour boundary the current file is renamed with the date suffix
// of the closed period and a fresh file is opened under the original name.
type FileSink struct {
	mu          sync.Mutex
	path        string
	file        *os.File
	periodStart time.Time
	now         func() time.Time
}

// NewFileSink opens (or creates) the log file at path and returns a sink
// writing to it.
func NewFileSink(path string) (*FileSink, error) {
	return newFileSink(path, time.Now)
}

func newFileSink(path string, now func() time.Time) (*FileSink, error) {
	file, err := openLogFile(path)
	if err != nil {
		return nil, err
	}

	return &FileSink{
		path:        path,
		file:        file,
		periodStart: now().Truncate(time.Hour),
		now:         now,
	}, nil
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePermissions)
}

// WriteLine implements Sink, rotating first if the hour has changed since the
// current file was opened.
func (s *FileSink) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.now().Truncate(time.Hour).After(s.periodStart) {
		if err := s.rotate(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(s.file, line)
	return err
}

// rotate closes the current file, renames it with the closed period suffix,
// and reopens the original path. Callers must hold the sink lock.
func (s *FileSink) rotate() error {
	if err := s.file.Close(); err != nil {
		return err
	}

	rotated := s.path + "." + s.periodStart.Format(RotationSuffixLayout)
	if err := os.Rename(s.path, rotated); err != nil {
		return err
	}

	file, err := openLogFile(s.path)
	if err != nil {
		return err
	}

	s.file = file
	s.periodStart = s.now().Truncate(time.Hour)
	return nil
}

// Close implements Sink.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
