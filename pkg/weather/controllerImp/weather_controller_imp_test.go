package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/pkg/weather"
	"agrimanage/pkg/weather/service"
	"agrimanage/pkg/weather/serviceImp"
)

func TestWeatherRoutes(t *testing.T) {
	h := New(serviceImp.NewWeatherService(weather.NewMock(), nil, nil))
	e := echo.New()
	e.GET("/weather", h.Fetch)
	e.GET("/weather/current", h.Current)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	assert.Equal(t, http.StatusNotFound, get("/weather/current").Code)
	assert.Equal(t, http.StatusBadRequest, get("/weather").Code)
	assert.Equal(t, http.StatusBadRequest, get("/weather?lat=x&lon=1").Code)
	assert.Equal(t, http.StatusNotFound, get("/weather?q=nowhere").Code)

	rec := get("/weather?q=Mumbai")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v service.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "Mumbai", v.Report.Place)
	assert.Equal(t, weather.Advisory("Rain"), v.Advisory)
	assert.Equal(t, 12, v.WindKMH)

	rec = get("/weather?lat=28.6&lon=77.2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, get("/weather/current").Code)
}
