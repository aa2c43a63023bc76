// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package repositories

import (
	"github.com/otaflow-dev/otaflow/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their shared
// interfaces.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewAppRepository, fx.As(new(shared.AppRepository)))),
	fx.Provide(fx.Annotate(NewUpdateRepository, fx.As(new(shared.UpdateRepository)))),
	fx.Provide(fx.Annotate(NewBundleRepository, fx.As(new(shared.BundleRepository)))),
	fx.Provide(fx.Annotate(NewAssetRepository, fx.As(new(shared.AssetRepository)))),
	fx.Provide(fx.Annotate(NewManifestRepository, fx.As(new(shared.ManifestRepository)))),
	fx.Provide(fx.Annotate(NewUserRepository, fx.As(new(shared.UserRepository)))),
)
