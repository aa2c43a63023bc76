// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/controllers"
	"github.com/otaflow-dev/otaflow/middlewares"
	"github.com/otaflow-dev/otaflow/shared"
)

// ManifestRouter is the unauthenticated device surface. Devices either
// resolve by slug with their version facts, or bootstrap the newest
// manifest with nothing but the app key.
type ManifestRouter struct {
	*echo.Group
}

func NewManifestRouter(
	apiV1Router APIV1Router,
	manifestController *controllers.ManifestController,
	appRepository shared.AppRepository,
) ManifestRouter {
	manifestRouter := apiV1Router.Group.Group("/manifest")
	manifestRouter.GET("/:appSlug", manifestController.GetManifest, middlewares.AppBySlug(appRepository))
	manifestRouter.GET("/latest/:appKey", manifestController.Latest, middlewares.AppByKey(appRepository))
	manifestRouter.GET("/latest/:appKey/:channel", manifestController.Latest, middlewares.AppByKey(appRepository))

	return ManifestRouter{Group: manifestRouter}
}
