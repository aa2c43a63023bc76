// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package transformer

import (
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/utils"
)

func AppModelToDTO(app models.App) dtos.AppDTO {
	return dtos.AppDTO{
		ID:            app.ID,
		CreatedAt:     app.CreatedAt,
		Name:          app.Name,
		Slug:          app.Slug,
		Description:   app.Description,
		OwnerID:       app.OwnerID,
		GithubRepoURL: app.GithubRepoURL,
		AppKey:        app.AppKey,
	}
}

func AppModelsToDTOs(apps []models.App) []dtos.AppDTO {
	return utils.Map(apps, AppModelToDTO)
}

func AppModelToPublicDTO(app models.App) dtos.PublicAppDTO {
	return dtos.PublicAppDTO{
		Name:        app.Name,
		Slug:        app.Slug,
		Description: app.Description,
	}
}

// ApplyAppUpdate copies the non-nil request fields onto the model.
func ApplyAppUpdate(app *models.App, req dtos.AppUpdateRequest) {
	if req.Name != nil {
		app.Name = *req.Name
	}
	if req.Description != nil {
		app.Description = *req.Description
	}
	if req.GithubRepoURL != nil {
		app.GithubRepoURL = req.GithubRepoURL
	}
}
