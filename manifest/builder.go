// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package manifest builds the wire document OTA clients consume. The
// builder is a pure projection: identical inputs always produce the
// identical document, which is what allows serving to re-derive
// manifests instead of trusting a possibly stale persisted copy.
package manifest

import (
	"fmt"
	"time"

	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
)

// URLContext carries everything needed to build absolute download URLs.
type URLContext struct {
	BaseURL string
	AppSlug string
}

func (c URLContext) bundleURL(bundleID uint) string {
	return fmt.Sprintf("%s/api/v1/bundles/%s/%d", c.BaseURL, c.AppSlug, bundleID)
}

func (c URLContext) assetURL(assetID uint) string {
	return fmt.Sprintf("%s/api/v1/assets/%s/%d", c.BaseURL, c.AppSlug, assetID)
}

// Build projects an update and its rows into the client manifest.
// The document id is the bundle's content hash, deliberately shared by
// updates that reuse the same bundle payload.
func Build(update models.Update, bundle models.Bundle, assets []models.Asset, urlCtx URLContext) dtos.ManifestDocument {
	doc := dtos.ManifestDocument{
		ID:             bundle.Hash,
		CreatedAt:      update.CreatedAt.UTC().Format(time.RFC3339),
		RuntimeVersion: update.RuntimeVersion,
		LaunchAsset: dtos.ManifestAsset{
			Hash:        bundle.Hash,
			Key:         bundle.Hash,
			ContentType: BundleContentType,
			URL:         urlCtx.bundleURL(bundle.ID),
		},
		Assets: make([]dtos.ManifestAsset, 0, len(assets)),
		Metadata: dtos.ManifestMetadata{
			Version:   update.Version,
			Channel:   update.Channel,
			Platforms: update.Platforms,
		},
	}

	for _, asset := range assets {
		doc.Assets = append(doc.Assets, dtos.ManifestAsset{
			Hash:        asset.Hash,
			Key:         asset.Name,
			ContentType: ContentTypeFor(asset.Name),
			URL:         urlCtx.assetURL(asset.ID),
		})
	}

	if update.TargetVersionRange != nil {
		doc.TargetVersion = *update.TargetVersionRange
	}

	return doc
}
