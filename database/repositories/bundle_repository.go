// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package repositories

import (
	"errors"

	"github.com/otaflow-dev/otaflow/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bundleRepository struct {
	*GormRepository[uint, models.Bundle]
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) *bundleRepository {
	return &bundleRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.Bundle](db),
	}
}

// FindByHash looks up a bundle by content hash. The hash is globally
// unique, so the lookup deliberately ignores the app id.
func (r *bundleRepository) FindByHash(tx *gorm.DB, hash string) (models.Bundle, bool, error) {
	var bundle models.Bundle
	err := r.GetDB(tx).Where("hash = ?", hash).First(&bundle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bundle, false, nil
	}
	if err != nil {
		return bundle, false, err
	}
	return bundle, true, nil
}

// CreateIfNotExists inserts via ON CONFLICT DO NOTHING on the hash
// column. A plain insert losing a race against a concurrent publish
// would raise a unique violation and abort the enclosing transaction
// (SQLSTATE 25P02 on every later statement); the conflict clause keeps
// the transaction healthy so the caller can re-fetch the winner's row.
func (r *bundleRepository) CreateIfNotExists(tx *gorm.DB, bundle *models.Bundle) error {
	return r.GetDB(tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash"}},
		DoNothing: true,
	}).Create(bundle).Error
}

func (r *bundleRepository) ReadByAppAndID(appID, id uint) (models.Bundle, error) {
	var bundle models.Bundle
	err := r.db.Where("id = ? AND app_id = ?", id, appID).First(&bundle).Error
	return bundle, err
}
