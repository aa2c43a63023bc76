// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dtos

import "github.com/otaflow-dev/otaflow/database/models"

// ManifestDocument is the exact wire document an OTA client fetches to
// learn which bundle and assets make up its update. Field order is
// fixed by the struct, so marshalling identical inputs yields
// byte-identical JSON.
type ManifestDocument struct {
	// ID is the bundle's content hash: stable for a given payload, and
	// deliberately shared between updates that reuse a bundle.
	ID             string           `json:"id"`
	CreatedAt      string           `json:"createdAt"`
	RuntimeVersion string           `json:"runtimeVersion"`
	LaunchAsset    ManifestAsset    `json:"launchAsset"`
	Assets         []ManifestAsset  `json:"assets"`
	Metadata       ManifestMetadata `json:"metadata"`
	TargetVersion  string           `json:"targetVersion,omitempty"`
}

type ManifestAsset struct {
	Hash        string `json:"hash"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
}

type ManifestMetadata struct {
	Version   string                `json:"version"`
	Channel   models.ReleaseChannel `json:"channel"`
	Platforms []string              `json:"platforms"`
}

// ManifestQuery carries the client-supplied facts the resolver needs.
type ManifestQuery struct {
	Channel        models.ReleaseChannel
	Platform       models.Platform
	RuntimeVersion string
	AppVersion     *string
	BaseURL        string
}
