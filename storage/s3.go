// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/pkg/errors"
)

type s3Storage struct {
	client *minio.Client
	bucket string
}

func NewS3Storage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*s3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create s3 client")
	}

	return &s3Storage{client: client, bucket: bucket}, nil
}

func (s *s3Storage) Put(ctx context.Context, key string, data []byte, contentType string) (shared.StorageLocation, error) {
	loc := shared.StorageLocation{Type: TypeS3, Path: key}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return loc, errors.Wrap(err, "could not upload blob")
	}
	return loc, nil
}

func (s *s3Storage) Get(ctx context.Context, loc shared.StorageLocation) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, loc.Path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch blob")
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

func (s *s3Storage) Delete(ctx context.Context, loc shared.StorageLocation) error {
	return s.client.RemoveObject(ctx, s.bucket, loc.Path, minio.RemoveObjectOptions{})
}
