// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage implements the blob store behind publish and file
// serving. Two backends exist, local disk and S3-compatible object
// storage, selected by configuration. Keys are content-addressed, so a
// key is only ever written once.
package storage

import (
	"fmt"
	"os"
	"path"

	"github.com/otaflow-dev/otaflow/shared"
	"go.uber.org/fx"
)

const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// GenerateKey builds the content-addressed storage key for a blob.
// Identical content under the same app and kind maps to the same key,
// which is what makes bundle de-duplication free at the storage layer.
func GenerateKey(appID uint, kind, hash, filename string) string {
	return fmt.Sprintf("%d/%s/%s/%s", appID, kind, hash, path.Base(filename))
}

// NewFromEnv selects the backend from STORAGE_TYPE.
func NewFromEnv() (shared.FileStorage, error) {
	switch os.Getenv("STORAGE_TYPE") {
	case TypeS3:
		return NewS3Storage(
			os.Getenv("S3_ENDPOINT"),
			os.Getenv("S3_ACCESS_KEY"),
			os.Getenv("S3_SECRET_KEY"),
			os.Getenv("S3_BUCKET"),
			os.Getenv("S3_USE_SSL") != "false",
		)
	case TypeLocal, "":
		dir := os.Getenv("STORAGE_PATH")
		if dir == "" {
			dir = "./uploads"
		}
		return NewLocalStorage(dir)
	default:
		return nil, fmt.Errorf("unknown STORAGE_TYPE %q", os.Getenv("STORAGE_TYPE"))
	}
}

var Module = fx.Options(
	fx.Provide(NewFromEnv),
)
