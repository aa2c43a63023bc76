// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import (
	"crypto/rand"
	"encoding/hex"
)

type App struct {
	Model
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description" gorm:"not null;default:''"`
	OwnerID     uint   `json:"ownerId" gorm:"not null"`
	// GithubRepoURL links the app to its source repository, purely
	// informational.
	GithubRepoURL *string `json:"githubRepoUrl,omitempty"`
	// AppKey is the device-facing lookup handle. Unlike the slug it can
	// be rotated without breaking human-facing tooling.
	AppKey string `json:"appKey" gorm:"uniqueIndex;not null;type:varchar(32)"`

	Updates []Update `json:"updates,omitempty" gorm:"foreignKey:AppID;constraint:OnDelete:CASCADE;"`
	Bundles []Bundle `json:"bundles,omitempty" gorm:"foreignKey:AppID;constraint:OnDelete:CASCADE;"`
}

func (App) TableName() string {
	return "apps"
}

// GenerateAppKey returns a random 16 byte hex string.
func GenerateAppKey() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process has much bigger
		// problems than app key generation.
		panic(err)
	}
	return hex.EncodeToString(b)
}
