// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package shared

import (
	"fmt"

	"github.com/otaflow-dev/otaflow/database/models"
)

func SetApp(ctx Context, app models.App) {
	ctx.Set("app", app)
}

func GetApp(ctx Context) (models.App, error) {
	app, ok := ctx.Get("app").(models.App)
	if !ok {
		return models.App{}, fmt.Errorf("no app in context")
	}
	return app, nil
}

func SetUser(ctx Context, user models.User) {
	ctx.Set("user", user)
}

func GetUser(ctx Context) (models.User, error) {
	user, ok := ctx.Get("user").(models.User)
	if !ok {
		return models.User{}, fmt.Errorf("no user in context")
	}
	return user, nil
}

// BaseURL returns the externally visible base URL for building manifest
// asset links: the BASE_URL env override when set, otherwise derived
// from the incoming request.
func BaseURL(ctx Context, override string) string {
	if override != "" {
		return override
	}
	scheme := ctx.Scheme()
	host := ctx.Request().Host
	return fmt.Sprintf("%s://%s", scheme, host)
}
