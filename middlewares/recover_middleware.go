// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package middlewares

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func recovermiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic while handling request",
						"panic", r,
						"method", ctx.Request().Method,
						"path", ctx.Request().URL.Path,
						"stack", string(debug.Stack()))
					err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error").
						WithInternal(errors.Errorf("panic: %v", r))
				}
			}()
			return next(ctx)
		}
	}
}
