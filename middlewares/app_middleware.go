// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/shared"
	"gorm.io/gorm"

	"github.com/pkg/errors"
)

// AppBySlug resolves the :appSlug route param and stores the app on the
// request context, so controllers never deal with lookups themselves.
func AppBySlug(appRepository shared.AppRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			slug := ctx.Param("appSlug")
			if slug == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing app slug")
			}

			app, err := appRepository.ReadBySlug(slug)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "app not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "could not load app").WithInternal(err)
			}

			shared.SetApp(ctx, app)
			return next(ctx)
		}
	}
}

// AppByKey resolves the :appKey route param. Device-facing endpoints
// use the rotatable key instead of the slug.
func AppByKey(appRepository shared.AppRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			key := ctx.Param("appKey")
			if key == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing app key")
			}

			app, err := appRepository.ReadByAppKey(key)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "app not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "could not load app").WithInternal(err)
			}

			shared.SetApp(ctx, app)
			return next(ctx)
		}
	}
}
