// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services_test

import (
	"context"
	"fmt"
	"time"

	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/otaflow-dev/otaflow/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// baseFakeRepository satisfies the generic repository contract with
// panics so each fake only implements what its test exercises.
type baseFakeRepository[T utils.Tabler] struct{}

func (baseFakeRepository[T]) Create(shared.DB, *T) error            { panic("unexpected Create") }
func (baseFakeRepository[T]) CreateBatch(shared.DB, []T) error      { panic("unexpected CreateBatch") }
func (baseFakeRepository[T]) Read(uint) (T, error)                  { panic("unexpected Read") }
func (baseFakeRepository[T]) Update(shared.DB, *T) error            { panic("unexpected Update") }
func (baseFakeRepository[T]) Delete(shared.DB, uint) error          { panic("unexpected Delete") }
func (baseFakeRepository[T]) List([]uint) ([]T, error)              { panic("unexpected List") }
func (baseFakeRepository[T]) All() ([]T, error)                     { panic("unexpected All") }
func (baseFakeRepository[T]) Transaction(func(shared.DB) error) error {
	panic("unexpected Transaction")
}
func (baseFakeRepository[T]) GetDB(tx shared.DB) shared.DB { return tx }
func (baseFakeRepository[T]) Save(shared.DB, *T) error     { panic("unexpected Save") }

// memStore is the shared in-memory state behind the repository fakes.
// Transactions snapshot the slices and restore them on error, which is
// enough atomicity for the orchestrator tests.
type memStore struct {
	apps      []models.App
	updates   []models.Update
	bundles   []models.Bundle
	assets    []models.Asset
	manifests []models.Manifest
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) snapshot() memStore {
	cp := *s
	cp.apps = append([]models.App(nil), s.apps...)
	cp.updates = append([]models.Update(nil), s.updates...)
	cp.bundles = append([]models.Bundle(nil), s.bundles...)
	cp.assets = append([]models.Asset(nil), s.assets...)
	cp.manifests = append([]models.Manifest(nil), s.manifests...)
	return cp
}

type fakeAppRepository struct {
	baseFakeRepository[models.App]
	store *memStore
}

func (r *fakeAppRepository) Create(_ shared.DB, app *models.App) error {
	app.ID = r.store.id()
	app.CreatedAt = time.Now()
	r.store.apps = append(r.store.apps, *app)
	return nil
}

func (r *fakeAppRepository) Read(id uint) (models.App, error) {
	for _, app := range r.store.apps {
		if app.ID == id {
			return app, nil
		}
	}
	return models.App{}, gorm.ErrRecordNotFound
}

func (r *fakeAppRepository) ReadBySlug(slug string) (models.App, error) {
	for _, app := range r.store.apps {
		if app.Slug == slug {
			return app, nil
		}
	}
	return models.App{}, gorm.ErrRecordNotFound
}

func (r *fakeAppRepository) ReadByAppKey(appKey string) (models.App, error) {
	for _, app := range r.store.apps {
		if app.AppKey == appKey {
			return app, nil
		}
	}
	return models.App{}, gorm.ErrRecordNotFound
}

func (r *fakeAppRepository) ListByOwner(ownerID uint) ([]models.App, error) {
	var out []models.App
	for _, app := range r.store.apps {
		if app.OwnerID == ownerID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeAppRepository) Save(_ shared.DB, app *models.App) error {
	for i := range r.store.apps {
		if r.store.apps[i].ID == app.ID {
			r.store.apps[i] = *app
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAppRepository) Delete(_ shared.DB, id uint) error {
	for i := range r.store.apps {
		if r.store.apps[i].ID == id {
			r.store.apps = append(r.store.apps[:i], r.store.apps[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeUpdateRepository struct {
	baseFakeRepository[models.Update]
	store *memStore
	// hideExisting makes the pre-insert duplicate check miss, as when a
	// concurrent publish commits between the check and the insert. The
	// unique index still fires in Create.
	hideExisting bool
}

func (r *fakeUpdateRepository) Transaction(fn func(tx shared.DB) error) error {
	before := r.store.snapshot()
	if err := fn(nil); err != nil {
		*r.store = before
		return err
	}
	return nil
}

func (r *fakeUpdateRepository) Create(_ shared.DB, update *models.Update) error {
	for _, u := range r.store.updates {
		if u.AppID == update.AppID && u.Version == update.Version && u.Channel == update.Channel {
			return gorm.ErrDuplicatedKey
		}
	}
	update.ID = r.store.id()
	update.CreatedAt = time.Now()
	r.store.updates = append(r.store.updates, *update)
	return nil
}

func (r *fakeUpdateRepository) Update(_ shared.DB, update *models.Update) error {
	for i := range r.store.updates {
		if r.store.updates[i].ID == update.ID {
			r.store.updates[i] = *update
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUpdateRepository) ExistsByVersionAndChannel(_ shared.DB, appID uint, version string, channel models.ReleaseChannel) (bool, error) {
	if r.hideExisting {
		return false, nil
	}
	for _, u := range r.store.updates {
		if u.AppID == appID && u.Version == version && u.Channel == channel {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUpdateRepository) GetByAppAndChannel(appID uint, channel models.ReleaseChannel) ([]models.Update, error) {
	var out []models.Update
	for _, u := range r.store.updates {
		if u.AppID == appID && u.Channel == channel {
			u.Bundle = r.bundleFor(u.BundleID)
			u.Manifest = r.manifestFor(u.ManifestID)
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUpdateRepository) GetByApp(appID uint, channel *models.ReleaseChannel) ([]models.Update, error) {
	var out []models.Update
	for _, u := range r.store.updates {
		if u.AppID != appID {
			continue
		}
		if channel != nil && u.Channel != *channel {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUpdateRepository) ReadNested(appID, id uint) (models.Update, error) {
	for _, u := range r.store.updates {
		if u.AppID == appID && u.ID == id {
			u.Bundle = r.bundleFor(u.BundleID)
			u.Manifest = r.manifestFor(u.ManifestID)
			return u, nil
		}
	}
	return models.Update{}, gorm.ErrRecordNotFound
}

func (r *fakeUpdateRepository) GetLatestByChannel(appID uint, channel models.ReleaseChannel) (models.Update, error) {
	for i := len(r.store.updates) - 1; i >= 0; i-- {
		u := r.store.updates[i]
		if u.AppID == appID && u.Channel == channel && u.ManifestID != nil {
			u.Manifest = r.manifestFor(u.ManifestID)
			return u, nil
		}
	}
	return models.Update{}, gorm.ErrRecordNotFound
}

func (r *fakeUpdateRepository) bundleFor(id uint) models.Bundle {
	for _, b := range r.store.bundles {
		if b.ID == id {
			return b
		}
	}
	return models.Bundle{}
}

func (r *fakeUpdateRepository) manifestFor(id *uint) *models.Manifest {
	if id == nil {
		return nil
	}
	for _, m := range r.store.manifests {
		if m.ID == *id {
			cp := m
			return &cp
		}
	}
	return nil
}

type fakeBundleRepository struct {
	baseFakeRepository[models.Bundle]
	store *memStore
	// loseRaceOnce makes the next insert behave as if a concurrent
	// publish committed the same hash first: the rival's row lands in
	// the store and the caller's bundle keeps its zero ID.
	loseRaceOnce bool
}

func (r *fakeBundleRepository) FindByHash(_ shared.DB, hash string) (models.Bundle, bool, error) {
	for _, b := range r.store.bundles {
		if b.Hash == hash {
			return b, true, nil
		}
	}
	return models.Bundle{}, false, nil
}

func (r *fakeBundleRepository) CreateIfNotExists(_ shared.DB, bundle *models.Bundle) error {
	if r.loseRaceOnce {
		r.loseRaceOnce = false
		rival := *bundle
		rival.ID = r.store.id()
		r.store.bundles = append(r.store.bundles, rival)
		return nil
	}
	for _, b := range r.store.bundles {
		if b.Hash == bundle.Hash {
			return nil
		}
	}
	bundle.ID = r.store.id()
	r.store.bundles = append(r.store.bundles, *bundle)
	return nil
}

func (r *fakeBundleRepository) ReadByAppAndID(appID, id uint) (models.Bundle, error) {
	for _, b := range r.store.bundles {
		if b.AppID == appID && b.ID == id {
			return b, nil
		}
	}
	return models.Bundle{}, gorm.ErrRecordNotFound
}

type fakeAssetRepository struct {
	baseFakeRepository[models.Asset]
	store           *memStore
	failCreateBatch error
}

func (r *fakeAssetRepository) CreateBatch(_ shared.DB, assets []models.Asset) error {
	if r.failCreateBatch != nil {
		return r.failCreateBatch
	}
	for i := range assets {
		assets[i].ID = r.store.id()
		r.store.assets = append(r.store.assets, assets[i])
	}
	return nil
}

func (r *fakeAssetRepository) GetByUpdateID(updateID uint) ([]models.Asset, error) {
	var out []models.Asset
	for _, a := range r.store.assets {
		if a.UpdateID == updateID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepository) ReadForApp(appID, id uint) (models.Asset, error) {
	for _, a := range r.store.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Asset{}, gorm.ErrRecordNotFound
}

type fakeManifestRepository struct {
	baseFakeRepository[models.Manifest]
	store *memStore
}

func (r *fakeManifestRepository) Create(_ shared.DB, m *models.Manifest) error {
	m.ID = r.store.id()
	r.store.manifests = append(r.store.manifests, *m)
	return nil
}

func (r *fakeManifestRepository) RefreshContent(id uint, content []byte, hash string) error {
	for i := range r.store.manifests {
		if r.store.manifests[i].ID == id {
			r.store.manifests[i].Content = content
			r.store.manifests[i].Hash = hash
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeStorage records every key it writes and deletes.
type fakeStorage struct {
	blobs   map[string][]byte
	deleted []string
	failPut bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: map[string][]byte{}}
}

func (s *fakeStorage) Put(_ context.Context, key string, data []byte, _ string) (shared.StorageLocation, error) {
	loc := shared.StorageLocation{Type: "fake", Path: key}
	if s.failPut {
		return loc, errors.New("disk full")
	}
	if _, ok := s.blobs[key]; !ok {
		s.blobs[key] = data
	}
	return loc, nil
}

func (s *fakeStorage) Get(_ context.Context, loc shared.StorageLocation) ([]byte, error) {
	data, ok := s.blobs[loc.Path]
	if !ok {
		return nil, fmt.Errorf("no blob at %s", loc.Path)
	}
	return data, nil
}

func (s *fakeStorage) Delete(_ context.Context, loc shared.StorageLocation) error {
	delete(s.blobs, loc.Path)
	s.deleted = append(s.deleted, loc.Path)
	return nil
}
