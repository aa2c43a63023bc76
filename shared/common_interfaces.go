// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package shared

import (
	"context"

	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/extract"
	"github.com/otaflow-dev/otaflow/utils"
)

type AppRepository interface {
	utils.Repository[uint, models.App, DB]
	ReadBySlug(slug string) (models.App, error)
	ReadByAppKey(appKey string) (models.App, error)
	ListByOwner(ownerID uint) ([]models.App, error)
}

type UpdateRepository interface {
	utils.Repository[uint, models.Update, DB]
	GetByAppAndChannel(appID uint, channel models.ReleaseChannel) ([]models.Update, error)
	GetByApp(appID uint, channel *models.ReleaseChannel) ([]models.Update, error)
	ReadNested(appID, id uint) (models.Update, error)
	ExistsByVersionAndChannel(tx DB, appID uint, version string, channel models.ReleaseChannel) (bool, error)
	GetLatestByChannel(appID uint, channel models.ReleaseChannel) (models.Update, error)
}

type BundleRepository interface {
	utils.Repository[uint, models.Bundle, DB]
	FindByHash(tx DB, hash string) (models.Bundle, bool, error)
	// CreateIfNotExists inserts the bundle unless a row with its hash
	// already exists. Losing the race is not an error: the bundle's ID
	// stays zero and the caller re-fetches the winner's row.
	CreateIfNotExists(tx DB, bundle *models.Bundle) error
	ReadByAppAndID(appID, id uint) (models.Bundle, error)
}

type AssetRepository interface {
	utils.Repository[uint, models.Asset, DB]
	GetByUpdateID(updateID uint) ([]models.Asset, error)
	ReadForApp(appID, id uint) (models.Asset, error)
}

type ManifestRepository interface {
	utils.Repository[uint, models.Manifest, DB]
	RefreshContent(id uint, content []byte, hash string) error
}

type UserRepository interface {
	utils.Repository[uint, models.User, DB]
	ReadByTokenHash(tokenHash string) (models.User, error)
}

// StorageLocation describes where a blob ended up. Type selects the
// backend that can serve it, Path is the backend-scoped key.
type StorageLocation struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// FileStorage is the blob store the publish orchestrator writes
// through. Keys are content-addressed and therefore write-once.
type FileStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (StorageLocation, error)
	Get(ctx context.Context, loc StorageLocation) ([]byte, error)
	Delete(ctx context.Context, loc StorageLocation) error
}

type AppService interface {
	Create(req dtos.AppCreateRequest, ownerID uint) (models.App, error)
	Read(id uint) (models.App, error)
	List(ownerID uint) ([]models.App, error)
	Update(app *models.App) error
	Delete(id uint) error
	RegenerateAppKey(id uint) (models.App, error)
}

type PublishService interface {
	Publish(ctx context.Context, app models.App, pkg extract.Package, fallback dtos.PublishOptions, publisherID uint) (models.Update, error)
}

type ManifestService interface {
	GetManifest(ctx context.Context, app models.App, query dtos.ManifestQuery) (dtos.ManifestDocument, error)
	LatestStored(app models.App, channel models.ReleaseChannel) ([]byte, error)
}
