// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package transformer

import (
	"encoding/json"

	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/utils"
)

func UpdateModelToDTO(update models.Update) dtos.UpdateDTO {
	dto := dtos.UpdateDTO{
		ID:                 update.ID,
		CreatedAt:          update.CreatedAt,
		AppID:              update.AppID,
		Version:            update.Version,
		Channel:            update.Channel,
		RuntimeVersion:     update.RuntimeVersion,
		TargetVersionRange: update.TargetVersionRange,
		Platforms:          update.Platforms,
		IsRollback:         update.IsRollback,
		PublishedBy:        update.PublishedBy,
	}

	// Bundle is only populated when the repository preloaded it
	if update.Bundle.ID != 0 {
		dto.Bundle = &dtos.BundleDTO{
			ID:   update.Bundle.ID,
			Hash: update.Bundle.Hash,
			Size: update.Bundle.Size,
		}
	}

	if len(update.Assets) > 0 {
		dto.Assets = AssetModelsToDTOs(update.Assets)
	}

	// the cached manifest document rides along when it was preloaded
	if update.Manifest != nil && len(update.Manifest.Content) > 0 {
		var doc dtos.ManifestDocument
		if err := json.Unmarshal(update.Manifest.Content, &doc); err == nil {
			dto.Manifest = &doc
		}
	}

	return dto
}

func UpdateModelsToDTOs(updates []models.Update) []dtos.UpdateDTO {
	return utils.Map(updates, UpdateModelToDTO)
}

func AssetModelToDTO(asset models.Asset) dtos.AssetDTO {
	return dtos.AssetDTO{
		ID:   asset.ID,
		Name: asset.Name,
		Hash: asset.Hash,
		Size: asset.Size,
	}
}

func AssetModelsToDTOs(assets []models.Asset) []dtos.AssetDTO {
	return utils.Map(assets, AssetModelToDTO)
}
