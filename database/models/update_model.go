// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"github.com/lib/pq"
	"github.com/otaflow-dev/otaflow/utils"
)

// Update is one published revision of an app on a channel. Rows are
// immutable after publish except for back-filling ManifestID once the
// manifest has been built inside the same transaction.
type Update struct {
	Model
	AppID          uint           `json:"appId" gorm:"not null;uniqueIndex:idx_updates_app_version_channel"`
	Version        string         `json:"version" gorm:"not null;uniqueIndex:idx_updates_app_version_channel"`
	Channel        ReleaseChannel `json:"channel" gorm:"not null;uniqueIndex:idx_updates_app_version_channel"`
	RuntimeVersion string         `json:"runtimeVersion" gorm:"not null"`
	// TargetVersionRange optionally widens compatibility to a semver
	// range of app binary versions instead of an exact runtime match.
	TargetVersionRange *string        `json:"targetVersionRange,omitempty"`
	Platforms          pq.StringArray `json:"platforms" gorm:"type:text[];not null"`
	IsRollback         bool           `json:"isRollback" gorm:"not null;default:false"`
	BundleID           uint           `json:"bundleId" gorm:"not null"`
	ManifestID         *uint          `json:"manifestId,omitempty"`
	PublishedBy        uint           `json:"publishedBy" gorm:"not null"`

	Bundle    Bundle    `json:"bundle,omitempty" gorm:"foreignKey:BundleID"`
	Manifest  *Manifest `json:"manifest,omitempty" gorm:"foreignKey:ManifestID"`
	Assets    []Asset   `json:"assets,omitempty" gorm:"foreignKey:UpdateID;constraint:OnDelete:CASCADE;"`
	Publisher *User     `json:"publisher,omitempty" gorm:"foreignKey:PublishedBy"`
}

func (Update) TableName() string {
	return "updates"
}

// SupportsPlatform treats an empty platform list as "all platforms";
// older publishes never declared one.
func (u Update) SupportsPlatform(platform Platform) bool {
	if len(u.Platforms) == 0 {
		return true
	}
	return utils.Contains(u.Platforms, string(platform))
}
