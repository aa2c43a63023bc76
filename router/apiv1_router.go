// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/cmd/otaflow/api"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(srv api.Server) APIV1Router {
	apiV1Router := srv.Echo.Group("/api/v1")

	apiV1Router.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(200, echo.Map{"status": "ok"})
	})

	return APIV1Router{Group: apiV1Router}
}
