// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dtos

import (
	"time"

	"github.com/otaflow-dev/otaflow/database/models"
)

// PublishOptions are the form-field fallbacks of a publish request.
// Values found in the package's metadata.json always take precedence.
type PublishOptions struct {
	Version            string
	Channel            string
	RuntimeVersion     string
	Platforms          []string
	TargetVersionRange string
	// BaseURL is derived from the request, not a form field. It seeds
	// the download URLs of the manifest cached at publish time.
	BaseURL string
}

type UpdateDTO struct {
	ID                 uint                  `json:"id"`
	CreatedAt          time.Time             `json:"createdAt"`
	AppID              uint                  `json:"appId"`
	Version            string                `json:"version"`
	Channel            models.ReleaseChannel `json:"channel"`
	RuntimeVersion     string                `json:"runtimeVersion"`
	TargetVersionRange *string               `json:"targetVersionRange,omitempty"`
	Platforms          []string              `json:"platforms"`
	IsRollback         bool                  `json:"isRollback"`
	PublishedBy        uint                  `json:"publishedBy"`
	Bundle             *BundleDTO            `json:"bundle,omitempty"`
	Assets             []AssetDTO            `json:"assets,omitempty"`
	Manifest           *ManifestDocument     `json:"manifest,omitempty"`
}

type BundleDTO struct {
	ID   uint   `json:"id"`
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

type AssetDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

type PublishResponse struct {
	Message string    `json:"message"`
	Update  UpdateDTO `json:"update"`
}
