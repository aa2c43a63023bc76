// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/otaflow-dev/otaflow/shared"
	"github.com/pkg/errors"
)

type localStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*localStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "could not create storage directory")
	}
	return &localStorage{baseDir: baseDir}, nil
}

func (s *localStorage) path(key string) (string, error) {
	p := filepath.Join(s.baseDir, filepath.FromSlash(key))
	// keys are server generated, but a path escaping the base dir is
	// always a bug worth failing loudly on
	if !strings.HasPrefix(p, filepath.Clean(s.baseDir)+string(os.PathSeparator)) {
		return "", errors.Errorf("storage key %q escapes base directory", key)
	}
	return p, nil
}

func (s *localStorage) Put(_ context.Context, key string, data []byte, _ string) (shared.StorageLocation, error) {
	loc := shared.StorageLocation{Type: TypeLocal, Path: key}

	p, err := s.path(key)
	if err != nil {
		return loc, err
	}

	// content-addressed keys are write-once; an existing file already
	// holds exactly these bytes
	if _, err := os.Stat(p); err == nil {
		return loc, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return loc, errors.Wrap(err, "could not create blob directory")
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return loc, errors.Wrap(err, "could not write blob")
	}
	return loc, nil
}

func (s *localStorage) Get(_ context.Context, loc shared.StorageLocation) ([]byte, error) {
	p, err := s.path(loc.Path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

func (s *localStorage) Delete(_ context.Context, loc shared.StorageLocation) error {
	p, err := s.path(loc.Path)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
