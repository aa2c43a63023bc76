// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/controllers"
)

type UpdateRouter struct {
	*echo.Group
}

func NewUpdateRouter(
	appRouter AppRouter,
	updateController *controllers.UpdateController,
) UpdateRouter {
	updateRouter := appRouter.AppGroup.Group("/updates")
	updateRouter.POST("", updateController.Publish)
	updateRouter.GET("", updateController.List)
	updateRouter.GET("/:updateID", updateController.Read)

	return UpdateRouter{Group: updateRouter}
}
