// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package repositories

import (
	"github.com/otaflow-dev/otaflow/database/models"
	"gorm.io/gorm"
)

type updateRepository struct {
	*GormRepository[uint, models.Update]
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) *updateRepository {
	return &updateRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.Update](db),
	}
}

// GetByAppAndChannel returns every update published to the channel,
// newest first, with manifest and bundle preloaded. This is the
// resolver's candidate pool.
func (r *updateRepository) GetByAppAndChannel(appID uint, channel models.ReleaseChannel) ([]models.Update, error) {
	var updates []models.Update
	err := r.db.Where("app_id = ? AND channel = ?", appID, channel).
		Order("created_at DESC").
		Preload("Manifest").
		Preload("Bundle").
		Find(&updates).Error
	return updates, err
}

func (r *updateRepository) GetByApp(appID uint, channel *models.ReleaseChannel) ([]models.Update, error) {
	q := r.db.Where("app_id = ?", appID)
	if channel != nil {
		q = q.Where("channel = ?", *channel)
	}

	var updates []models.Update
	err := q.Order("created_at DESC").
		Preload("Bundle").
		Preload("Assets").
		Preload("Publisher").
		Find(&updates).Error
	return updates, err
}

// ReadNested loads one update with every association a publisher sees
// in the publish response.
func (r *updateRepository) ReadNested(appID, id uint) (models.Update, error) {
	var update models.Update
	err := r.db.Where("id = ? AND app_id = ?", id, appID).
		Preload("Bundle").
		Preload("Assets").
		Preload("Manifest").
		Preload("Publisher").
		First(&update).Error
	return update, err
}

// ExistsByVersionAndChannel is the duplicate-publish guard. It must be
// called on the enclosing transaction handle so two racing publishes of
// the same version cannot both pass.
func (r *updateRepository) ExistsByVersionAndChannel(tx *gorm.DB, appID uint, version string, channel models.ReleaseChannel) (bool, error) {
	var count int64
	err := r.GetDB(tx).Model(&models.Update{}).
		Where("app_id = ? AND version = ? AND channel = ?", appID, version, channel).
		Count(&count).Error
	return count > 0, err
}

// GetLatestByChannel returns the newest update on a channel that has a
// manifest, for the appKey bootstrap endpoints.
func (r *updateRepository) GetLatestByChannel(appID uint, channel models.ReleaseChannel) (models.Update, error) {
	var update models.Update
	err := r.db.Where("app_id = ? AND channel = ? AND manifest_id IS NOT NULL", appID, channel).
		Order("created_at DESC").
		Preload("Manifest").
		First(&update).Error
	return update, err
}
