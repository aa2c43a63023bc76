// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package repositories

import (
	"github.com/otaflow-dev/otaflow/database/models"
	"gorm.io/gorm"
)

type assetRepository struct {
	*GormRepository[uint, models.Asset]
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *assetRepository {
	return &assetRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.Asset](db),
	}
}

func (r *assetRepository) GetByUpdateID(updateID uint) ([]models.Asset, error) {
	var assets []models.Asset
	err := r.db.Where("update_id = ?", updateID).Order("name ASC").Find(&assets).Error
	return assets, err
}

// ReadForApp loads an asset and verifies its owning update belongs to
// the app, so asset ids cannot be fished across apps.
func (r *assetRepository) ReadForApp(appID, id uint) (models.Asset, error) {
	var asset models.Asset
	err := r.db.Joins("JOIN updates ON updates.id = assets.update_id").
		Where("assets.id = ? AND updates.app_id = ?", id, appID).
		First(&asset).Error
	return asset, err
}
