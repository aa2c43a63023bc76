// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/controllers"
	"github.com/otaflow-dev/otaflow/middlewares"
	"github.com/otaflow-dev/otaflow/shared"
)

// AppRouter covers the authenticated publisher surface for managing
// apps. Every route requires a personal access token.
type AppRouter struct {
	*echo.Group
	// AppGroup is scoped to a single app resolved from :appSlug.
	AppGroup *echo.Group
}

func NewAppRouter(
	apiV1Router APIV1Router,
	appController *controllers.AppController,
	appRepository shared.AppRepository,
	userRepository shared.UserRepository,
) AppRouter {
	// registered on the parent group so it skips TokenAuth
	apiV1Router.Group.GET("/apps/:appSlug/public", appController.ReadPublic, middlewares.AppBySlug(appRepository))

	appRouter := apiV1Router.Group.Group("/apps", middlewares.TokenAuth(userRepository))
	appRouter.POST("", appController.Create)
	appRouter.GET("", appController.List)

	appGroup := appRouter.Group("/:appSlug", middlewares.AppBySlug(appRepository))
	appGroup.GET("", appController.Read)
	appGroup.PATCH("", appController.Update)
	appGroup.DELETE("", appController.Delete)
	appGroup.POST("/regenerate-key", appController.RegenerateAppKey)

	return AppRouter{Group: appRouter, AppGroup: appGroup}
}
