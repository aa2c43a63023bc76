// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"github.com/otaflow-dev/otaflow/resolver"
	"github.com/pkg/errors"
)

// Sentinel errors controllers translate into HTTP status codes. They
// are matched by errors.Is, so services may wrap them freely.
var (
	ErrDuplicateUpdate      = errors.New("an update with this version already exists for this channel")
	ErrMissingRequiredField = errors.New("missing required publish field")
	ErrInvalidRangeFormat   = errors.New("invalid target version range format")
	ErrInvalidChannel       = errors.New("unknown release channel")
	ErrStorageWrite         = errors.New("writing to blob storage failed")

	// re-exported so controllers only depend on one error surface
	ErrInvalidVersionFormat = resolver.ErrInvalidVersionFormat
	ErrNoCompatibleUpdate   = resolver.ErrNoCompatibleUpdate
)
