// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/transformer"
)

type AppController struct {
	appService shared.AppService
}

func NewAppController(appService shared.AppService) *AppController {
	return &AppController{appService: appService}
}

func (c *AppController) Create(ctx shared.Context) error {
	var req dtos.AppCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	user, err := shared.GetUser(ctx)
	if err != nil {
		return echo.NewHTTPError(401, "missing user").WithInternal(err)
	}

	app, err := c.appService.Create(req, user.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not create app").WithInternal(err)
	}

	return ctx.JSON(201, transformer.AppModelToDTO(app))
}

func (c *AppController) List(ctx shared.Context) error {
	user, err := shared.GetUser(ctx)
	if err != nil {
		return echo.NewHTTPError(401, "missing user").WithInternal(err)
	}

	apps, err := c.appService.List(user.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not list apps").WithInternal(err)
	}

	return ctx.JSON(200, transformer.AppModelsToDTOs(apps))
}

func (c *AppController) Read(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}
	return ctx.JSON(200, transformer.AppModelToDTO(app))
}

// ReadPublic serves the unauthenticated view of an app. It never
// exposes the appKey.
func (c *AppController) ReadPublic(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}
	return ctx.JSON(200, transformer.AppModelToPublicDTO(app))
}

func (c *AppController) Update(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	var req dtos.AppUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	transformer.ApplyAppUpdate(&app, req)
	if err := c.appService.Update(&app); err != nil {
		return echo.NewHTTPError(500, "could not update app").WithInternal(err)
	}

	return ctx.JSON(200, transformer.AppModelToDTO(app))
}

func (c *AppController) Delete(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	if err := c.appService.Delete(app.ID); err != nil {
		return echo.NewHTTPError(500, "could not delete app").WithInternal(err)
	}
	return ctx.NoContent(204)
}

// RegenerateAppKey rotates the device-facing key and returns the app
// with the new value.
func (c *AppController) RegenerateAppKey(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	rotated, err := c.appService.RegenerateAppKey(app.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not regenerate app key").WithInternal(err)
	}
	return ctx.JSON(200, transformer.AppModelToDTO(rotated))
}
