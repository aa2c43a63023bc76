// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package repositories

import (
	"github.com/otaflow-dev/otaflow/database/models"
	"gorm.io/gorm"
)

type userRepository struct {
	*GormRepository[uint, models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.User](db),
	}
}

func (r *userRepository) ReadByTokenHash(tokenHash string) (models.User, error) {
	var user models.User
	err := r.db.Where("token_hash = ?", tokenHash).First(&user).Error
	return user, err
}
