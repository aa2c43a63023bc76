package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/otaflow-dev/otaflow/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "http://updates.example.com/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAppContext(t *testing.T) {
	ctx := newTestContext(t)

	_, err := GetApp(ctx)
	assert.Error(t, err)

	SetApp(ctx, models.App{Slug: "my-app"})
	app, err := GetApp(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my-app", app.Slug)
}

func TestBaseURL(t *testing.T) {
	ctx := newTestContext(t)

	t.Run("override wins", func(t *testing.T) {
		assert.Equal(t, "https://cdn.example.com", BaseURL(ctx, "https://cdn.example.com"))
	})

	t.Run("falls back to request host", func(t *testing.T) {
		assert.Equal(t, "http://updates.example.com", BaseURL(ctx, ""))
	})
}
