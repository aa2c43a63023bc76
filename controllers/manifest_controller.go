// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/services"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/pkg/errors"
)

type ManifestController struct {
	manifestService shared.ManifestService
}

func NewManifestController(manifestService shared.ManifestService) *ManifestController {
	return &ManifestController{manifestService: manifestService}
}

// GetManifest is the device-facing resolution endpoint: it answers
// "which update should this device run" with a full manifest document.
func (c *ManifestController) GetManifest(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	channel, ok := models.ParseChannel(ctx.QueryParam("channel"))
	if !ok {
		return echo.NewHTTPError(400, "unknown release channel")
	}

	platform := models.Platform(strings.ToLower(ctx.QueryParam("platform")))
	if !platform.Valid() {
		return echo.NewHTTPError(400, "missing or unknown platform")
	}

	runtimeVersion := ctx.QueryParam("runtimeVersion")
	if runtimeVersion == "" {
		return echo.NewHTTPError(400, "missing runtimeVersion")
	}

	query := dtos.ManifestQuery{
		Channel:        channel,
		Platform:       platform,
		RuntimeVersion: runtimeVersion,
		BaseURL:        shared.BaseURL(ctx, os.Getenv("BASE_URL")),
	}
	if appVersion := ctx.QueryParam("appVersion"); appVersion != "" {
		query.AppVersion = shared.Ptr(appVersion)
	}

	doc, err := c.manifestService.GetManifest(ctx.Request().Context(), app, query)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVersionFormat):
			return echo.NewHTTPError(400, err.Error())
		case errors.Is(err, services.ErrNoCompatibleUpdate):
			return echo.NewHTTPError(404, err.Error())
		default:
			return echo.NewHTTPError(500, "could not resolve manifest").WithInternal(err)
		}
	}

	return ctx.JSON(200, doc)
}

// Latest serves the cached manifest of the newest update on a channel.
// Looked up by appKey, so rotating the key cuts devices off.
func (c *ManifestController) Latest(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	channel, ok := models.ParseChannel(ctx.Param("channel"))
	if !ok {
		return echo.NewHTTPError(400, "unknown release channel")
	}

	content, err := c.manifestService.LatestStored(app, channel)
	if err != nil {
		if errors.Is(err, services.ErrNoCompatibleUpdate) {
			return echo.NewHTTPError(404, "no update published on this channel")
		}
		return echo.NewHTTPError(500, "could not load manifest").WithInternal(err)
	}

	return ctx.JSONBlob(200, content)
}
