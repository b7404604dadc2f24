// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package blob

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/caarlos0/env/v11"

	"github.com/mia-platform/logship/internal/archive"
)

const (
	// containerName is the fixed container that collects the terminal logs.
	containerName = "gst-restrictions"
	// folderPrefix is the fixed folder every object key is nested under.
	folderPrefix = "gst-app/logs"
)

var (
	// ErrBlobUploader is the sentinel error for all blob uploader errors.
	ErrBlobUploader = errors.New("blob uploader")
)

var _ archive.Uploader = &Uploader{}

// Uploader implements archive.Uploader on top of an Azure Blob Storage
// container. Object uploads overwrite existing blobs, which keeps retried
// archive runs idempotent.
type Uploader struct {
	client *azblob.Client
}

// NewUploader creates a new Uploader reading the needed configuration from
// the env variables.
func NewUploader() (*Uploader, error) {
	config, err := env.ParseAs[config]()
	if err != nil {
		return nil, handleError(err)
	}

	if err := config.validate(); err != nil {
		return nil, handleError(err)
	}

	client, err := config.newClient()
	if err != nil {
		return nil, handleError(err)
	}

	return &Uploader{client: client}, nil
}

// Upload implements archive.Uploader sending the file content to the fixed
// container under the fixed folder prefix.
func (u *Uploader) Upload(ctx context.Context, filePath, objectKey string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return handleError(err)
	}
	defer file.Close()

	if _, err := u.client.UploadFile(ctx, containerName, folderPrefix+"/"+objectKey, file, nil); err != nil {
		return handleError(err)
	}

	return nil
}

// newClient builds the blob client from a connection string when present,
// falling back to the default Azure credential chain.
func (c config) newClient() (*azblob.Client, error) {
	if c.ConnectionString != "" {
		return azblob.NewClientFromConnectionString(c.ConnectionString, nil)
	}

	credentials, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}

	return azblob.NewClient(c.serviceURL(), credentials, nil)
}

// handleError always wraps the given error with ErrBlobUploader.
func handleError(err error) error {
	if err == nil {
		return nil
	}

	var parseErr env.AggregateError
	if errors.As(err, &parseErr) {
		err = parseErr.Errors[0]
	}

	return fmt.Errorf("%w: %w", ErrBlobUploader, err)
}
