package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/pkg/market"
	"agrimanage/pkg/market/service"
	"agrimanage/pkg/market/serviceImp"
)

func TestMarketRoutes(t *testing.T) {
	h := New(serviceImp.NewMarketService(market.NewMock(), nil, nil))
	e := echo.New()
	e.GET("/market", h.Prices)
	e.GET("/market/locations", h.Locations)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/market?location=karnataka")
	require.Equal(t, http.StatusOK, rec.Code)
	var b service.Board
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "karnataka", b.Location)
	assert.Len(t, b.Prices, 5)

	rec = get("/market?cached=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "karnataka", b.Location)

	assert.Equal(t, http.StatusBadRequest, get("/market?location=mars").Code)
	assert.Contains(t, get("/market/locations").Body.String(), "uttar-pradesh")
}
