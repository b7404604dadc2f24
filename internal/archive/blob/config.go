// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package blob

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingEnvVariable reports missing mandatory environment variables.
	ErrMissingEnvVariable = errors.New("missing environment variable")
)

// config holds all the configuration needed to connect to the blob store.
type config struct {
	ConnectionString string `env:"LOGSHIP_STORAGE_BLOB_CONNECTION_STRING"`
	StorageAccount   string `env:"LOGSHIP_STORAGE_BLOB_ACCOUNT_NAME"`
}

// validate checks that at least one credential source is configured.
func (c config) validate() error {
	if len(c.ConnectionString) == 0 && len(c.StorageAccount) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnvVariable, "one of LOGSHIP_STORAGE_BLOB_CONNECTION_STRING or LOGSHIP_STORAGE_BLOB_ACCOUNT_NAME must be present")
	}

	return nil
}

func (c config) serviceURL() string {
	if strings.Contains(c.StorageAccount, ".blob.core.windows.net") {
		return c.StorageAccount
	}

	return fmt.Sprintf("https://%s.blob.core.windows.net/", c.StorageAccount)
}
