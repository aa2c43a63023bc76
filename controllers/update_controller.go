// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/extract"
	"github.com/otaflow-dev/otaflow/services"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/transformer"
	"github.com/otaflow-dev/otaflow/utils"
	"github.com/pkg/errors"
)

type UpdateController struct {
	publishService   shared.PublishService
	updateRepository shared.UpdateRepository
}

func NewUpdateController(publishService shared.PublishService, updateRepository shared.UpdateRepository) *UpdateController {
	return &UpdateController{
		publishService:   publishService,
		updateRepository: updateRepository,
	}
}

// Publish accepts a multipart upload of an update package archive and
// records it as a new update on the app.
func (c *UpdateController) Publish(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}
	user, err := shared.GetUser(ctx)
	if err != nil {
		return echo.NewHTTPError(401, "missing user").WithInternal(err)
	}

	archivePath, cleanup, err := c.saveUpload(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	pkg, err := extract.Open(archivePath)
	if err != nil {
		if errors.Is(err, extract.ErrMissingBundle) {
			return echo.NewHTTPError(400, "update package does not contain bundle.js")
		}
		return echo.NewHTTPError(400, "invalid update package").WithInternal(err)
	}

	update, err := c.publishService.Publish(ctx.Request().Context(), app, pkg, publishOptionsFromForm(ctx), user.ID)
	if err != nil {
		return publishErrorToHTTP(err)
	}

	return ctx.JSON(201, dtos.PublishResponse{
		Message: "update published",
		Update:  transformer.UpdateModelToDTO(update),
	})
}

// saveUpload copies the multipart file into a private temp directory.
// The archive only lives until the request finished.
func (c *UpdateController) saveUpload(ctx shared.Context) (string, func(), error) {
	fileHeader, err := ctx.FormFile("package")
	if err != nil {
		return "", nil, echo.NewHTTPError(400, "missing package file").WithInternal(err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, echo.NewHTTPError(400, "could not read package file").WithInternal(err)
	}
	defer src.Close()

	dir, err := os.MkdirTemp("", "otaflow-upload-")
	if err != nil {
		return "", nil, echo.NewHTTPError(500, "could not buffer upload").WithInternal(err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	dstPath := filepath.Join(dir, uuid.NewString()+".zip")
	dst, err := os.Create(dstPath)
	if err != nil {
		cleanup()
		return "", nil, echo.NewHTTPError(500, "could not buffer upload").WithInternal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		cleanup()
		return "", nil, echo.NewHTTPError(500, "could not buffer upload").WithInternal(err)
	}
	return dstPath, cleanup, nil
}

func publishOptionsFromForm(ctx shared.Context) dtos.PublishOptions {
	opts := dtos.PublishOptions{
		Version:            ctx.FormValue("version"),
		Channel:            ctx.FormValue("channel"),
		RuntimeVersion:     ctx.FormValue("runtimeVersion"),
		TargetVersionRange: ctx.FormValue("targetVersionRange"),
		BaseURL:            shared.BaseURL(ctx, os.Getenv("BASE_URL")),
	}
	if raw := ctx.FormValue("platforms"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			opts.Platforms = append(opts.Platforms, strings.TrimSpace(p))
		}
	}
	return opts
}

func publishErrorToHTTP(err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateUpdate):
		return echo.NewHTTPError(409, err.Error())
	case errors.Is(err, services.ErrMissingRequiredField),
		errors.Is(err, services.ErrInvalidVersionFormat),
		errors.Is(err, services.ErrInvalidRangeFormat),
		errors.Is(err, services.ErrInvalidChannel):
		return echo.NewHTTPError(400, err.Error())
	default:
		return echo.NewHTTPError(500, "could not publish update").WithInternal(err)
	}
}

// List returns the app's updates, optionally filtered by ?channel=.
func (c *UpdateController) List(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	var channel *models.ReleaseChannel
	if raw := ctx.QueryParam("channel"); raw != "" {
		parsed, ok := models.ParseChannel(raw)
		if !ok {
			return echo.NewHTTPError(400, "unknown release channel")
		}
		channel = &parsed
	}

	updates, err := c.updateRepository.GetByApp(app.ID, channel)
	if err != nil {
		return echo.NewHTTPError(500, "could not list updates").WithInternal(err)
	}

	if raw := ctx.QueryParam("platform"); raw != "" {
		platform := models.Platform(strings.ToLower(raw))
		if !platform.Valid() {
			return echo.NewHTTPError(400, "unknown platform")
		}
		updates = utils.Filter(updates, func(u models.Update) bool {
			return u.SupportsPlatform(platform)
		})
	}

	return ctx.JSON(200, transformer.UpdateModelsToDTOs(updates))
}

func (c *UpdateController) Read(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	id, err := strconv.ParseUint(ctx.Param("updateID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(400, "invalid update id")
	}

	update, err := c.updateRepository.ReadNested(app.ID, uint(id))
	if err != nil {
		return echo.NewHTTPError(404, "update not found").WithInternal(err)
	}
	return ctx.JSON(200, transformer.UpdateModelToDTO(update))
}
