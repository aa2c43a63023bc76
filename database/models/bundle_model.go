// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// Bundle is a content-addressed code payload. The hash is globally
// unique: re-uploading identical bytes reuses the existing row instead
// of duplicating storage, even across apps.
type Bundle struct {
	Model
	AppID       uint   `json:"appId" gorm:"not null"`
	Hash        string `json:"hash" gorm:"uniqueIndex;not null;type:varchar(64)"`
	StorageType string `json:"storageType" gorm:"not null"`
	StoragePath string `json:"storagePath" gorm:"not null"`
	Size        int64  `json:"size" gorm:"not null"`
}

func (Bundle) TableName() string {
	return "bundles"
}
