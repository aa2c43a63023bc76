// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package repositories

import (
	"github.com/otaflow-dev/otaflow/database/models"
	"gorm.io/gorm"
)

type manifestRepository struct {
	*GormRepository[uint, models.Manifest]
	db *gorm.DB
}

func NewManifestRepository(db *gorm.DB) *manifestRepository {
	return &manifestRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.Manifest](db),
	}
}

// RefreshContent replaces the cached document of a manifest. Used by
// the serving path when the rebuilt manifest drifted from the stored
// copy.
func (r *manifestRepository) RefreshContent(id uint, content []byte, hash string) error {
	return r.db.Model(&models.Manifest{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "hash": hash}).Error
}
