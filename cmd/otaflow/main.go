// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/otaflow-dev/otaflow/cmd/otaflow/api"
	"github.com/otaflow-dev/otaflow/controllers"
	"github.com/otaflow-dev/otaflow/database"
	"github.com/otaflow-dev/otaflow/database/repositories"
	"github.com/otaflow-dev/otaflow/router"
	"github.com/otaflow-dev/otaflow/services"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/storage"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	db, err := shared.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrations(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db),
		fx.Provide(api.NewServer),
		repositories.Module,
		services.Module,
		controllers.Module,
		storage.Module,
		router.RouterModule,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(appRouter router.AppRouter) {}),
		fx.Invoke(func(updateRouter router.UpdateRouter) {}),
		fx.Invoke(func(manifestRouter router.ManifestRouter) {}),
		fx.Invoke(func(fileRouter router.FileRouter) {}),
	).Run()
}
