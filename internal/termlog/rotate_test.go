// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	t.Parallel()

	t.Run("writes lines to the log file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "1700000000.log")
		sink, err := NewFileSink(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = sink.Close() })

		require.NoError(t, sink.WriteLine("first line"))
		require.NoError(t, sink.WriteLine("second line"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first line\nsecond line\n", string(content))
	})

	t.Run("rotates when a write crosses the hour boundary", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2023, 6, 1, 10, 59, 0, 0, time.UTC)
		clock := func() time.Time { return now }

		path := filepath.Join(t.TempDir(), "1700000000.log")
		sink, err := newFileSink(path, clock)
		require.NoError(t, err)
		t.Cleanup(func() { _ = sink.Close() })

		require.NoError(t, sink.WriteLine("before rollover"))
		now = now.Add(2 * time.Minute)
		require.NoError(t, sink.WriteLine("after rollover"))

		rotated, err := os.ReadFile(path + ".2023-06-01_10")
		require.NoError(t, err)
		assert.Equal(t, "before rollover\n", string(rotated))

		current, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "after rollover\n", string(current))
	})

	t.Run("does not rotate inside the same hour", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2023, 6, 1, 10, 5, 0, 0, time.UTC)
		clock := func() time.Time { return now }

		dir := t.TempDir()
		path := filepath.Join(dir, "1700000000.log")
		sink, err := newFileSink(path, clock)
		require.NoError(t, err)
		t.Cleanup(func() { _ = sink.Close() })

		require.NoError(t, sink.WriteLine("one"))
		now = now.Add(30 * time.Minute)
		require.NoError(t, sink.WriteLine("two"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
