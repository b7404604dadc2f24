// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"testing"

	"github.com/mia-platform/logship/internal/archive"
)

var _ archive.Uploader = &FakeUploader{}

// FakeUploader records every upload request and can be primed to fail on
// selected object keys.
type FakeUploader struct {
	tb testing.TB

	UploadedKeys  []string
	UploadedPaths []string
	FailingKeys   map[string]error
}

func NewFakeUploader(tb testing.TB) *FakeUploader {
	tb.Helper()
	return &FakeUploader{tb: tb, FailingKeys: map[string]error{}}
}

func (f *FakeUploader) Upload(_ context.Context, filePath, objectKey string) error {
	f.tb.Helper()

	if err, ok := f.FailingKeys[objectKey]; ok {
		return err
	}

	f.UploadedPaths = append(f.UploadedPaths, filePath)
	f.UploadedKeys = append(f.UploadedKeys, objectKey)
	return nil
}
