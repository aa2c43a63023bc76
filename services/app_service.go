// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/pkg/errors"
)

type appService struct {
	appRepository shared.AppRepository
}

func NewAppService(appRepository shared.AppRepository) *appService {
	return &appService{appRepository: appRepository}
}

func (s *appService) Create(req dtos.AppCreateRequest, ownerID uint) (models.App, error) {
	app := models.App{
		Name:          req.Name,
		Slug:          s.uniqueSlug(req.Name),
		Description:   req.Description,
		OwnerID:       ownerID,
		GithubRepoURL: req.GithubRepoURL,
		AppKey:        models.GenerateAppKey(),
	}

	if err := s.appRepository.Create(nil, &app); err != nil {
		return models.App{}, errors.Wrap(err, "could not create app")
	}
	return app, nil
}

// uniqueSlug derives the URL slug from the app name and, on collision,
// appends a counter until the slug is free.
func (s *appService) uniqueSlug(name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		if _, err := s.appRepository.ReadBySlug(candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *appService) Read(id uint) (models.App, error) {
	return s.appRepository.Read(id)
}

func (s *appService) List(ownerID uint) ([]models.App, error) {
	return s.appRepository.ListByOwner(ownerID)
}

func (s *appService) Update(app *models.App) error {
	return s.appRepository.Save(nil, app)
}

func (s *appService) Delete(id uint) error {
	return s.appRepository.Delete(nil, id)
}

// RegenerateAppKey rotates the device-facing key. Devices holding the
// old key stop resolving immediately, which is the point.
func (s *appService) RegenerateAppKey(id uint) (models.App, error) {
	app, err := s.appRepository.Read(id)
	if err != nil {
		return models.App{}, err
	}

	app.AppKey = models.GenerateAppKey()
	if err := s.appRepository.Save(nil, &app); err != nil {
		return models.App{}, errors.Wrap(err, "could not rotate app key")
	}
	return app, nil
}
