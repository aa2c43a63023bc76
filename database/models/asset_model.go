// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// Asset is one file shipped alongside a bundle, scoped to its update.
// Name keeps the relative path inside the uploaded package
// (e.g. "icons/home.png") because clients address assets by that key.
type Asset struct {
	Model
	UpdateID    uint   `json:"updateId" gorm:"not null"`
	Name        string `json:"name" gorm:"not null"`
	Hash        string `json:"hash" gorm:"not null;type:varchar(64)"`
	StorageType string `json:"storageType" gorm:"not null"`
	StoragePath string `json:"storagePath" gorm:"not null"`
	Size        int64  `json:"size" gorm:"not null"`
}

func (Asset) TableName() string {
	return "assets"
}
