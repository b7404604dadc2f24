// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*Logger, *bytes.Buffer) {
	buffer := new(bytes.Buffer)
	logger := New()
	logger.Attach(NewStreamSink(buffer), NewFormatter(testContext))
	return logger, buffer
}

func bufferLines(buffer *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
}

func TestLoggerFanOut(t *testing.T) {
	t.Parallel()

	first := new(bytes.Buffer)
	second := new(bytes.Buffer)
	logger := New()
	logger.Attach(NewStreamSink(first), NewFormatter(testContext))
	logger.Attach(NewStreamSink(second), NewFormatter(testContext))

	logger.Infof("fan out to %d sinks", 2)

	assert.Contains(t, first.String(), "|fan out to 2 sinks")
	assert.Equal(t, first.String(), second.String())
}

func TestLoggerThresholds(t *testing.T) {
	t.Parallel()

	logger, buffer := newTestLogger()
	logger.SetLevels(WarningLevel, ErrorLevel)

	logger.Infof("silenced terminal line")
	logger.Warningf("visible terminal line")

	library := logger.Named("net/http:transport")
	library.Warningf("silenced library line")
	library.Errorf("visible library line")

	lines := bufferLines(buffer)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "visible terminal line")
	assert.Contains(t, lines[1], "visible library line")
	assert.Contains(t, lines[1], "|net/http:transport|")
}

func TestLoggerCallSite(t *testing.T) {
	t.Parallel()

	logger, buffer := newTestLogger()
	logger.Named("logship:test").Infof("call site check")

	fields := strings.Split(bufferLines(buffer)[0], "|")
	require.Len(t, fields, 9)
	assert.Equal(t, "TestLoggerCallSite", fields[6])
	assert.NotEqual(t, "0", fields[7])
}

func TestLoggerFuncNameOverride(t *testing.T) {
	t.Parallel()

	logger, buffer := newTestLogger()
	logger.WithFuncName("menu_dispatch").Infof("override check")

	fields := strings.Split(bufferLines(buffer)[0], "|")
	require.Len(t, fields, 9)
	assert.Equal(t, "menu_dispatch", fields[6])
	assert.Equal(t, "0", fields[7])
}

func TestLoggerException(t *testing.T) {
	t.Parallel()

	logger, buffer := newTestLogger()
	logger.Exceptionf(assert.AnError, "operation failed")

	line := bufferLines(buffer)[0]
	assert.True(t, strings.HasPrefix(line, "X|"), line)
	assert.Contains(t, line, "operation failed")
	assert.Contains(t, line, "assert.AnError general error for testing")
}

func TestLoggerClose(t *testing.T) {
	t.Parallel()

	logger, buffer := newTestLogger()
	require.NoError(t, logger.Close())

	logger.Infof("dropped after close")
	assert.Empty(t, buffer.String())
}
