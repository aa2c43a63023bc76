// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dtos

import "time"

type AppCreateRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	Description   string  `json:"description" validate:"max=2000"`
	GithubRepoURL *string `json:"githubRepoUrl,omitempty" validate:"omitempty,url"`
}

type AppUpdateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	GithubRepoURL *string `json:"githubRepoUrl,omitempty" validate:"omitempty,url"`
}

type AppDTO struct {
	ID            uint      `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	OwnerID       uint      `json:"ownerId"`
	GithubRepoURL *string   `json:"githubRepoUrl,omitempty"`
	AppKey        string    `json:"appKey"`
}

// PublicAppDTO is the unauthenticated view: no appKey.
type PublicAppDTO struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
