// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import "go.uber.org/fx"

var Module = fx.Module("controllers",
	fx.Provide(
		NewAppController,
		NewUpdateController,
		NewManifestController,
		NewFileController,
	),
)
