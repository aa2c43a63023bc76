// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/controllers"
	"github.com/otaflow-dev/otaflow/middlewares"
	"github.com/otaflow-dev/otaflow/shared"
)

// FileRouter serves the blobs manifests point at. Unauthenticated, a
// device downloading its update carries no credentials.
type FileRouter struct {
	Bundles *echo.Group
	Assets  *echo.Group
}

func NewFileRouter(
	apiV1Router APIV1Router,
	fileController *controllers.FileController,
	appRepository shared.AppRepository,
) FileRouter {
	bundles := apiV1Router.Group.Group("/bundles/:appSlug", middlewares.AppBySlug(appRepository))
	bundles.GET("/:bundleID", fileController.GetBundle)

	assets := apiV1Router.Group.Group("/assets/:appSlug", middlewares.AppBySlug(appRepository))
	assets.GET("/:assetID", fileController.GetAsset)

	return FileRouter{Bundles: bundles, Assets: assets}
}
