// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers_test

import (
	"archive/zip"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/controllers"
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/otaflow-dev/otaflow/dtos"
	"github.com/otaflow-dev/otaflow/extract"
	"github.com/otaflow-dev/otaflow/services"
	"github.com/otaflow-dev/otaflow/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublishService struct {
	update       models.Update
	err          error
	lastPkg      extract.Package
	lastFallback dtos.PublishOptions
}

func (s *stubPublishService) Publish(_ context.Context, _ models.App, pkg extract.Package, fallback dtos.PublishOptions, _ uint) (models.Update, error) {
	s.lastPkg = pkg
	s.lastFallback = fallback
	return s.update, s.err
}

func packageUpload(t *testing.T, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("package", "update.zip")
	require.NoError(t, err)
	_, err = fw.Write(archive.Bytes())
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func publishContext(t *testing.T, body *bytes.Buffer, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	shared.SetApp(ctx, models.App{Model: models.Model{ID: 1}, Slug: "demo"})
	shared.SetUser(ctx, models.User{Model: models.Model{ID: 7}, Username: "carol"})
	return ctx, rec
}

func TestPublishEndpoint(t *testing.T) {
	svc := &stubPublishService{update: models.Update{Model: models.Model{ID: 5}, Version: "1.0.0"}}
	c := controllers.NewUpdateController(svc, nil)

	body, contentType := packageUpload(t, map[string][]byte{
		"bundle.js":        []byte("console.log(1)"),
		"assets/logo.png":  []byte("png"),
		"assets/a/deep.js": []byte("js"),
	}, map[string]string{
		"version":        "1.0.0",
		"runtimeVersion": "50.0.0",
		"channel":        "staging",
		"platforms":      "ios, android",
	})

	ctx, rec := publishContext(t, body, contentType)
	require.NoError(t, c.Publish(ctx))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"update published"`)

	// the archive reached the service fully decoded
	assert.NotEmpty(t, svc.lastPkg.BundleHash)
	assert.Len(t, svc.lastPkg.Assets, 2)

	// form fields rode along as fallbacks
	assert.Equal(t, "1.0.0", svc.lastFallback.Version)
	assert.Equal(t, "staging", svc.lastFallback.Channel)
	assert.Equal(t, []string{"ios", "android"}, svc.lastFallback.Platforms)
	assert.NotEmpty(t, svc.lastFallback.BaseURL)
}

func TestPublishEndpointMissingFile(t *testing.T) {
	c := controllers.NewUpdateController(&stubPublishService{}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	ctx, _ := publishContext(t, &body, mw.FormDataContentType())
	err := c.Publish(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPublishEndpointMissingBundle(t *testing.T) {
	c := controllers.NewUpdateController(&stubPublishService{}, nil)

	body, contentType := packageUpload(t, map[string][]byte{
		"assets/logo.png": []byte("png"),
	}, nil)

	ctx, _ := publishContext(t, body, contentType)
	err := c.Publish(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "bundle.js")
}

func TestPublishEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"duplicate", services.ErrDuplicateUpdate, http.StatusConflict},
		{"missing field", services.ErrMissingRequiredField, http.StatusBadRequest},
		{"bad range", services.ErrInvalidRangeFormat, http.StatusBadRequest},
		{"bad version", services.ErrInvalidVersionFormat, http.StatusBadRequest},
		{"storage", services.ErrStorageWrite, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := controllers.NewUpdateController(&stubPublishService{err: tc.err}, nil)
			body, contentType := packageUpload(t, map[string][]byte{"bundle.js": []byte("x")}, nil)

			ctx, _ := publishContext(t, body, contentType)
			err := c.Publish(ctx)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tc.code, he.Code)
		})
	}
}
