// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/manifest"
	"github.com/otaflow-dev/otaflow/resolver"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type manifestService struct {
	updateRepository   shared.UpdateRepository
	assetRepository    shared.AssetRepository
	manifestRepository shared.ManifestRepository
	fireAndForget      utils.FireAndForgetSynchronizer
}

func NewManifestService(
	updateRepository shared.UpdateRepository,
	assetRepository shared.AssetRepository,
	manifestRepository shared.ManifestRepository,
	fireAndForget utils.FireAndForgetSynchronizer,
) *manifestService {
	return &manifestService{
		updateRepository:   updateRepository,
		assetRepository:    assetRepository,
		manifestRepository: manifestRepository,
		fireAndForget:      fireAndForget,
	}
}

// GetManifest resolves the compatible update for the requesting device
// and returns a freshly built manifest. The persisted copy is only a
// cache: when the rebuilt document differs from it, the cache is
// refreshed in the background without delaying the response.
func (s *manifestService) GetManifest(_ context.Context, app models.App, query dtos.ManifestQuery) (dtos.ManifestDocument, error) {
	candidates, err := s.updateRepository.GetByAppAndChannel(app.ID, query.Channel)
	if err != nil {
		return dtos.ManifestDocument{}, errors.Wrap(err, "could not load channel updates")
	}

	update, err := resolver.Resolve(candidates, query.Platform, query.RuntimeVersion, query.AppVersion)
	if err != nil {
		return dtos.ManifestDocument{}, err
	}

	assets, err := s.assetRepository.GetByUpdateID(update.ID)
	if err != nil {
		return dtos.ManifestDocument{}, errors.Wrap(err, "could not load update assets")
	}

	doc := manifest.Build(update, update.Bundle, assets, manifest.URLContext{
		BaseURL: query.BaseURL,
		AppSlug: app.Slug,
	})

	s.refreshCacheIfStale(update, doc)
	return doc, nil
}

func (s *manifestService) refreshCacheIfStale(update models.Update, doc dtos.ManifestDocument) {
	if update.ManifestID == nil || update.Manifest == nil {
		return
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return
	}
	hash := utils.HashBytes(content)
	if hash == update.Manifest.Hash {
		return
	}

	id := *update.ManifestID
	s.fireAndForget.FireAndForget(func() {
		if err := s.manifestRepository.RefreshContent(id, content, hash); err != nil {
			slog.Warn("could not refresh cached manifest", "manifestId", id, "err", err)
		}
	})
}

// LatestStored serves the cached manifest of the newest update on a
// channel. Used by the appKey bootstrap endpoint, which has no device
// version facts to resolve against.
func (s *manifestService) LatestStored(app models.App, channel models.ReleaseChannel) ([]byte, error) {
	update, err := s.updateRepository.GetLatestByChannel(app.ID, channel)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCompatibleUpdate
		}
		return nil, errors.Wrap(err, "could not load latest update")
	}
	if update.Manifest == nil {
		return nil, ErrNoCompatibleUpdate
	}
	return update.Manifest.Content, nil
}
