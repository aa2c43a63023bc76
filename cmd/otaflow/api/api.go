// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/middlewares"
	"go.uber.org/fx"
)

// Server wraps the echo instance so routers can register their groups
// before the lifecycle starts listening.
type Server struct {
	Echo *echo.Echo
}

func NewServer(lc fx.Lifecycle) Server {
	e := middlewares.Server()

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}

			go func() {
				slog.Info("starting server", "port", port)
				if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
					slog.Error("server stopped", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})

	return Server{Echo: e}
}
