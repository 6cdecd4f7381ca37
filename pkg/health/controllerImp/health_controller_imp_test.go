package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/database"
	slotImp "agrimanage/pkg/slot/repositoryImp"
)

type downSlot struct{ *slotImp.Memory }

func (downSlot) Ping(context.Context) error { return errors.New("connection refused") }

func serve(h *HealthCtrl) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/health", h.Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestHealthOK(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	rec := serve(NewHealthCtrl(db, slotImp.NewSQLite(db)))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"database":{"ok":true}`)
	assert.Contains(t, rec.Body.String(), `"driver":"sqlite"`)
}

func TestHealthSlotDown(t *testing.T) {
	rec := serve(NewHealthCtrl(nil, downSlot{slotImp.NewMemory()}))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
	assert.NotContains(t, rec.Body.String(), "database")
}
