// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/utils"
)

const accessTokenHeader = "X-Access-Token" //nolint:gosec

// TokenAuth authenticates publisher endpoints with a personal access
// token. Only the token's SHA-256 hash is stored, so the lookup hashes
// the presented value first.
func TokenAuth(userRepository shared.UserRepository) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := ctx.Request().Header.Get(accessTokenHeader)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			user, err := userRepository.ReadByTokenHash(utils.HashString(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			shared.SetUser(ctx, user)
			return next(ctx)
		}
	}
}
