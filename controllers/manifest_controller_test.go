// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/controllers"
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/services"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubManifestService struct {
	doc       dtos.ManifestDocument
	stored    []byte
	err       error
	lastQuery dtos.ManifestQuery
}

func (s *stubManifestService) GetManifest(_ context.Context, _ models.App, query dtos.ManifestQuery) (dtos.ManifestDocument, error) {
	s.lastQuery = query
	return s.doc, s.err
}

func (s *stubManifestService) LatestStored(_ models.App, _ models.ReleaseChannel) ([]byte, error) {
	return s.stored, s.err
}

func manifestContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	shared.SetApp(ctx, models.App{Model: models.Model{ID: 1}, Slug: "demo", AppKey: "c0ffee"})
	return ctx, rec
}

func TestGetManifest(t *testing.T) {
	svc := &stubManifestService{doc: dtos.ManifestDocument{ID: "abc", RuntimeVersion: "50.0.0"}}
	c := controllers.NewManifestController(svc)

	ctx, rec := manifestContext(t, "/?platform=ios&runtimeVersion=50.0.0&appVersion=1.2.0")
	require.NoError(t, c.GetManifest(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	var doc dtos.ManifestDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "abc", doc.ID)

	assert.Equal(t, models.ChannelProduction, svc.lastQuery.Channel)
	assert.Equal(t, models.PlatformIOS, svc.lastQuery.Platform)
	require.NotNil(t, svc.lastQuery.AppVersion)
	assert.Equal(t, "1.2.0", *svc.lastQuery.AppVersion)
	assert.NotEmpty(t, svc.lastQuery.BaseURL)
}

func TestGetManifestParameterValidation(t *testing.T) {
	c := controllers.NewManifestController(&stubManifestService{})

	t.Run("missing platform", func(t *testing.T) {
		ctx, _ := manifestContext(t, "/?runtimeVersion=50.0.0")
		err := c.GetManifest(ctx)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("missing runtime version", func(t *testing.T) {
		ctx, _ := manifestContext(t, "/?platform=ios")
		err := c.GetManifest(ctx)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("bogus channel", func(t *testing.T) {
		ctx, _ := manifestContext(t, "/?platform=ios&runtimeVersion=50.0.0&channel=canary")
		err := c.GetManifest(ctx)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestGetManifestErrorMapping(t *testing.T) {
	t.Run("no compatible update is a 404", func(t *testing.T) {
		c := controllers.NewManifestController(&stubManifestService{err: services.ErrNoCompatibleUpdate})
		ctx, _ := manifestContext(t, "/?platform=ios&runtimeVersion=50.0.0")

		err := c.GetManifest(ctx)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})

	t.Run("invalid version is a 400", func(t *testing.T) {
		c := controllers.NewManifestController(&stubManifestService{err: services.ErrInvalidVersionFormat})
		ctx, _ := manifestContext(t, "/?platform=ios&runtimeVersion=latest")

		err := c.GetManifest(ctx)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestLatestManifest(t *testing.T) {
	svc := &stubManifestService{stored: []byte(`{"id":"cached"}`)}
	c := controllers.NewManifestController(svc)

	ctx, rec := manifestContext(t, "/")
	require.NoError(t, c.Latest(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"cached"}`, rec.Body.String())
}

func TestLatestManifestEmptyChannel(t *testing.T) {
	c := controllers.NewManifestController(&stubManifestService{err: services.ErrNoCompatibleUpdate})

	ctx, _ := manifestContext(t, "/")
	err := c.Latest(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
