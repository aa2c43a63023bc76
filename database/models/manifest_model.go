// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Manifest caches the document a device receives for an update. The
// manifest builder is the source of truth; serving re-derives the
// document and refreshes this cache when it drifted.
type Manifest struct {
	Model
	AppID          uint           `json:"appId" gorm:"not null"`
	Version        string         `json:"version" gorm:"not null"`
	Channel        ReleaseChannel `json:"channel" gorm:"not null"`
	RuntimeVersion string         `json:"runtimeVersion" gorm:"not null"`
	Platforms      pq.StringArray `json:"platforms" gorm:"type:text[];not null"`
	Content        datatypes.JSON `json:"content" gorm:"not null"`
	Hash           string         `json:"hash" gorm:"not null;type:varchar(64)"`
}

func (Manifest) TableName() string {
	return "manifests"
}
