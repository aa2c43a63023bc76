// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "go.uber.org/fx"

var RouterModule = fx.Options(
	fx.Provide(NewAPIV1Router),
	fx.Provide(NewAppRouter),
	fx.Provide(NewUpdateRouter),
	fx.Provide(NewManifestRouter),
	fx.Provide(NewFileRouter),
)
