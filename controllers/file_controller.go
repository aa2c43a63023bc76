// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/manifest"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FileController streams bundle and asset blobs to devices. URLs inside
// manifests point here.
type FileController struct {
	bundleRepository shared.BundleRepository
	assetRepository  shared.AssetRepository
	fileStorage      shared.FileStorage
}

func NewFileController(bundleRepository shared.BundleRepository, assetRepository shared.AssetRepository, fileStorage shared.FileStorage) *FileController {
	return &FileController{
		bundleRepository: bundleRepository,
		assetRepository:  assetRepository,
		fileStorage:      fileStorage,
	}
}

func (c *FileController) GetBundle(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	id, err := strconv.ParseUint(ctx.Param("bundleID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(400, "invalid bundle id")
	}

	bundle, err := c.bundleRepository.ReadByAppAndID(app.ID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(404, "bundle not found")
		}
		return echo.NewHTTPError(500, "could not load bundle").WithInternal(err)
	}

	data, err := c.fileStorage.Get(ctx.Request().Context(), shared.StorageLocation{
		Type: bundle.StorageType,
		Path: bundle.StoragePath,
	})
	if err != nil {
		return echo.NewHTTPError(404, "bundle blob not found").WithInternal(err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "bundle.js"))
	return ctx.Blob(http.StatusOK, manifest.BundleContentType, data)
}

func (c *FileController) GetAsset(ctx shared.Context) error {
	app, err := shared.GetApp(ctx)
	if err != nil {
		return echo.NewHTTPError(404, "app not found").WithInternal(err)
	}

	id, err := strconv.ParseUint(ctx.Param("assetID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(400, "invalid asset id")
	}

	asset, err := c.assetRepository.ReadForApp(app.ID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(404, "asset not found")
		}
		return echo.NewHTTPError(500, "could not load asset").WithInternal(err)
	}

	data, err := c.fileStorage.Get(ctx.Request().Context(), shared.StorageLocation{
		Type: asset.StorageType,
		Path: asset.StoragePath,
	})
	if err != nil {
		return echo.NewHTTPError(404, "asset blob not found").WithInternal(err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", path.Base(asset.Name)))
	return ctx.Blob(http.StatusOK, manifest.ContentTypeFor(asset.Name), data)
}
