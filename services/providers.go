// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/utils"
	"go.uber.org/fx"
)

var Module = fx.Module("services",
	fx.Provide(
		fx.Annotate(utils.NewFireAndForgetSynchronizer, fx.As(new(utils.FireAndForgetSynchronizer))),
		fx.Annotate(NewAppService, fx.As(new(shared.AppService))),
		fx.Annotate(NewPublishService, fx.As(new(shared.PublishService))),
		fx.Annotate(NewManifestService, fx.As(new(shared.ManifestService))),
	),
)
