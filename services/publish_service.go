// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/otaflow-dev/otaflow/database"
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/extract"
	"github.com/otaflow-dev/otaflow/manifest"
	"github.com/otaflow-dev/otaflow/normalize"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/storage"
	"github.com/otaflow-dev/otaflow/utils"
	"github.com/pkg/errors"
)

type publishService struct {
	updateRepository   shared.UpdateRepository
	bundleRepository   shared.BundleRepository
	assetRepository    shared.AssetRepository
	manifestRepository shared.ManifestRepository
	fileStorage        shared.FileStorage
}

func NewPublishService(
	updateRepository shared.UpdateRepository,
	bundleRepository shared.BundleRepository,
	assetRepository shared.AssetRepository,
	manifestRepository shared.ManifestRepository,
	fileStorage shared.FileStorage,
) *publishService {
	return &publishService{
		updateRepository:   updateRepository,
		bundleRepository:   bundleRepository,
		assetRepository:    assetRepository,
		manifestRepository: manifestRepository,
		fileStorage:        fileStorage,
	}
}

// resolvedOptions is the publish metadata after merging the package's
// metadata.json with the request's form fields and validating it.
type resolvedOptions struct {
	Version            string
	Channel            models.ReleaseChannel
	RuntimeVersion     string
	Platforms          []string
	TargetVersionRange *string
}

// Publish stores the package's blobs and records the update, all of it
// atomically: either the update exists with its bundle, assets and
// cached manifest, or nothing is visible.
func (s *publishService) Publish(ctx context.Context, app models.App, pkg extract.Package, fallback dtos.PublishOptions, publisherID uint) (models.Update, error) {
	opts, err := resolveOptions(pkg.Metadata, fallback)
	if err != nil {
		return models.Update{}, err
	}

	var update models.Update
	// only a blob we provably wrote first gets cleaned up on failure.
	// asset blobs are content-addressed and may be shared with earlier
	// updates, so orphans are left in place.
	var newBundleLoc *shared.StorageLocation

	err = s.updateRepository.Transaction(func(tx shared.DB) error {
		exists, err := s.updateRepository.ExistsByVersionAndChannel(tx, app.ID, opts.Version, opts.Channel)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateUpdate
		}

		bundle, err := s.ensureBundle(ctx, tx, app, pkg, &newBundleLoc)
		if err != nil {
			return err
		}

		update = models.Update{
			AppID:              app.ID,
			Version:            opts.Version,
			Channel:            opts.Channel,
			RuntimeVersion:     opts.RuntimeVersion,
			TargetVersionRange: opts.TargetVersionRange,
			Platforms:          opts.Platforms,
			BundleID:           bundle.ID,
			PublishedBy:        publisherID,
		}
		if err := s.updateRepository.Create(tx, &update); err != nil {
			// the unique constraint is the authority; the exists check
			// above only gives the nicer error message without a race
			if database.IsUniqueViolation(err) {
				return ErrDuplicateUpdate
			}
			return errors.Wrap(err, "could not create update")
		}

		assets, err := s.storeAssets(ctx, tx, app, update.ID, pkg.Assets)
		if err != nil {
			return err
		}
		update.Bundle = bundle
		update.Assets = assets

		return s.cacheManifest(tx, app, &update, bundle, assets, fallback.BaseURL)
	})
	if err != nil {
		if newBundleLoc != nil {
			if delErr := s.fileStorage.Delete(ctx, *newBundleLoc); delErr != nil {
				slog.Warn("could not clean up bundle blob after failed publish",
					"path", newBundleLoc.Path, "err", delErr)
			}
		}
		return models.Update{}, err
	}

	return update, nil
}

// ensureBundle returns the existing bundle row for the package's
// payload or writes the blob and creates one.
func (s *publishService) ensureBundle(ctx context.Context, tx shared.DB, app models.App, pkg extract.Package, newLoc **shared.StorageLocation) (models.Bundle, error) {
	bundle, found, err := s.bundleRepository.FindByHash(tx, pkg.BundleHash)
	if err != nil {
		return models.Bundle{}, err
	}
	if found {
		return bundle, nil
	}

	key := storage.GenerateKey(app.ID, "bundles", pkg.BundleHash, "bundle.js")
	loc, err := s.fileStorage.Put(ctx, key, pkg.Bundle, manifest.BundleContentType)
	if err != nil {
		return models.Bundle{}, errors.Wrap(ErrStorageWrite, err.Error())
	}
	*newLoc = &loc

	bundle = models.Bundle{
		AppID:       app.ID,
		Hash:        pkg.BundleHash,
		StorageType: loc.Type,
		StoragePath: loc.Path,
		Size:        int64(len(pkg.Bundle)),
	}
	if err := s.bundleRepository.CreateIfNotExists(tx, &bundle); err != nil {
		return models.Bundle{}, errors.Wrap(err, "could not create bundle")
	}
	if bundle.ID == 0 {
		// lost the race against a concurrent publish of the same
		// payload, their row is just as good. The blob key is content
		// addressed, so the winner references the exact same bytes and
		// nothing must be cleaned up.
		existing, found, err := s.bundleRepository.FindByHash(tx, pkg.BundleHash)
		if err != nil {
			return models.Bundle{}, err
		}
		if !found {
			return models.Bundle{}, errors.Errorf("bundle %s vanished after conflicting insert", pkg.BundleHash)
		}
		*newLoc = nil
		return existing, nil
	}
	return bundle, nil
}

func (s *publishService) storeAssets(ctx context.Context, tx shared.DB, app models.App, updateID uint, pkgAssets []extract.Asset) ([]models.Asset, error) {
	if len(pkgAssets) == 0 {
		return nil, nil
	}

	assets := make([]models.Asset, 0, len(pkgAssets))
	for _, a := range pkgAssets {
		key := storage.GenerateKey(app.ID, "assets", a.Hash, a.Name)
		loc, err := s.fileStorage.Put(ctx, key, a.Data, manifest.ContentTypeFor(a.Name))
		if err != nil {
			return nil, errors.Wrapf(ErrStorageWrite, "asset %s: %s", a.Name, err.Error())
		}
		assets = append(assets, models.Asset{
			UpdateID:    updateID,
			Name:        a.Name,
			Hash:        a.Hash,
			StorageType: loc.Type,
			StoragePath: loc.Path,
			Size:        int64(len(a.Data)),
		})
	}

	if err := s.assetRepository.CreateBatch(tx, assets); err != nil {
		return nil, errors.Wrap(err, "could not create assets")
	}
	return assets, nil
}

// cacheManifest builds the manifest once at publish time and persists
// it, then back-fills the update's manifest reference.
func (s *publishService) cacheManifest(tx shared.DB, app models.App, update *models.Update, bundle models.Bundle, assets []models.Asset, baseURL string) error {
	doc := manifest.Build(*update, bundle, assets, manifest.URLContext{
		BaseURL: baseURL,
		AppSlug: app.Slug,
	})
	content, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "could not serialize manifest")
	}

	m := models.Manifest{
		AppID:          app.ID,
		Version:        update.Version,
		Channel:        update.Channel,
		RuntimeVersion: update.RuntimeVersion,
		Platforms:      update.Platforms,
		Content:        content,
		Hash:           utils.HashBytes(content),
	}
	if err := s.manifestRepository.Create(tx, &m); err != nil {
		return errors.Wrap(err, "could not persist manifest")
	}

	update.ManifestID = &m.ID
	update.Manifest = &m
	return s.updateRepository.Update(tx, update)
}

func resolveOptions(meta extract.Metadata, fallback dtos.PublishOptions) (resolvedOptions, error) {
	version := firstNonEmpty(meta.Version, fallback.Version)
	if version == "" {
		return resolvedOptions{}, errors.Wrap(ErrMissingRequiredField, "version")
	}
	if !normalize.IsValidVersion(version) {
		return resolvedOptions{}, errors.Wrapf(ErrInvalidVersionFormat, "version %q", version)
	}

	runtimeVersion := firstNonEmpty(meta.RuntimeVersion, fallback.RuntimeVersion)
	if runtimeVersion == "" {
		return resolvedOptions{}, errors.Wrap(ErrMissingRequiredField, "runtimeVersion")
	}
	if !normalize.IsValidVersion(runtimeVersion) {
		return resolvedOptions{}, errors.Wrapf(ErrInvalidVersionFormat, "runtime version %q", runtimeVersion)
	}

	channel, ok := models.ParseChannel(firstNonEmpty(meta.Channel, fallback.Channel))
	if !ok {
		return resolvedOptions{}, errors.Wrapf(ErrInvalidChannel, "%q", firstNonEmpty(meta.Channel, fallback.Channel))
	}

	opts := resolvedOptions{
		Version:        version,
		Channel:        channel,
		RuntimeVersion: runtimeVersion,
	}

	if rng := firstNonEmpty(meta.TargetVersionRange, fallback.TargetVersionRange); rng != "" {
		if !normalize.IsValidRange(rng) {
			return resolvedOptions{}, errors.Wrapf(ErrInvalidRangeFormat, "%q", rng)
		}
		opts.TargetVersionRange = shared.Ptr(rng)
	}

	platforms := meta.Platforms
	if len(platforms) == 0 {
		platforms = fallback.Platforms
	}
	opts.Platforms = models.NormalizePlatforms(platforms)
	if len(opts.Platforms) == 0 {
		opts.Platforms = models.DefaultPlatforms()
	}

	return opts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
