// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import (
	"fmt"
	"io"
)

// Sink receives fully formatted log lines.
type Sink interface {
	// WriteLine appends a single formatted line to the sink output.
	WriteLine(line string) error

	// Close releases the resources held by the sink, if any.
	Close() error
}

// streamSink writes lines to an io.Writer, typically stdout or stderr.
// Closing it does not close the underlying writer.
type streamSink struct {
	writer io.Writer
}

// NewStreamSink returns a Sink writing to w.
func NewStreamSink(w io.Writer) Sink {
	return &streamSink{writer: w}
}

func (s *streamSink) WriteLine(line string) error {
	_, err := fmt.Fprintln(s.writer, line)
	return err
}

func (s *streamSink) Close() error {
	return nil
}

// noopSink discards every line.
type noopSink struct{}

// NewNoopSink returns a Sink that discards everything written to it.
func NewNoopSink() Sink {
	return noopSink{}
}

func (noopSink) WriteLine(string) error { return nil }
func (noopSink) Close() error           { return nil }
