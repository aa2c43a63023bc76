// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolver selects the single update a requesting device should
// receive from the pool published to an app's channel. It is pure:
// callers load the candidates, the resolver only decides.
package resolver

import (
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/normalize"
	"github.com/otaflow-dev/otaflow/utils"
	"github.com/pkg/errors"
)

var (
	ErrInvalidVersionFormat = errors.New("invalid semantic version format")
	ErrNoCompatibleUpdate   = errors.New("no compatible update available")
)

// Resolve filters candidates by platform and version compatibility and
// returns the compatible update with the highest semantic version.
//
// A candidate with a target version range is compatible when the app
// binary version (falling back to the runtime version when the client
// did not send one) satisfies the range. A candidate without a range is
// compatible only on an exact runtime version match.
func Resolve(candidates []models.Update, platform models.Platform, runtimeVersion string, appVersion *string) (models.Update, error) {
	if !normalize.IsValidVersion(runtimeVersion) {
		return models.Update{}, errors.Wrapf(ErrInvalidVersionFormat, "runtime version %q", runtimeVersion)
	}
	if appVersion != nil && !normalize.IsValidVersion(*appVersion) {
		return models.Update{}, errors.Wrapf(ErrInvalidVersionFormat, "app version %q", *appVersion)
	}

	if len(candidates) == 0 {
		return models.Update{}, ErrNoCompatibleUpdate
	}

	rangeVersion := runtimeVersion
	if appVersion != nil {
		rangeVersion = *appVersion
	}

	compatible := utils.Filter(candidates, func(u models.Update) bool {
		return u.SupportsPlatform(platform) && isVersionCompatible(u, runtimeVersion, rangeVersion)
	})
	if len(compatible) == 0 {
		return models.Update{}, ErrNoCompatibleUpdate
	}

	best := compatible[0]
	for _, candidate := range compatible[1:] {
		if normalize.CompareVersions(candidate.Version, best.Version) > 0 {
			best = candidate
		}
	}
	return best, nil
}

func isVersionCompatible(u models.Update, runtimeVersion, rangeVersion string) bool {
	if u.TargetVersionRange == nil || *u.TargetVersionRange == "" {
		return u.RuntimeVersion == runtimeVersion
	}

	rng, err := normalize.ParseRange(*u.TargetVersionRange)
	if err != nil {
		// a malformed stored range must never escape the resolver;
		// the candidate is simply not eligible
		return false
	}
	v, err := normalize.ParseVersion(rangeVersion)
	if err != nil {
		return false
	}
	return rng(v)
}
