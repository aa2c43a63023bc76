// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package repositories

import (
	"github.com/otaflow-dev/otaflow/database/models"
	"gorm.io/gorm"
)

type appRepository struct {
	*GormRepository[uint, models.App]
	db *gorm.DB
}

func NewAppRepository(db *gorm.DB) *appRepository {
	return &appRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.App](db),
	}
}

func (r *appRepository) ReadBySlug(slug string) (models.App, error) {
	var app models.App
	err := r.db.Where("slug = ?", slug).First(&app).Error
	return app, err
}

func (r *appRepository) ReadByAppKey(appKey string) (models.App, error) {
	var app models.App
	err := r.db.Where("app_key = ?", appKey).First(&app).Error
	return app, err
}

func (r *appRepository) ListByOwner(ownerID uint) ([]models.App, error) {
	var apps []models.App
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&apps).Error
	return apps, err
}
