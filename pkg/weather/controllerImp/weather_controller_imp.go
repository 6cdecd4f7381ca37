package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/weather/controller"
	"agrimanage/pkg/weather/service"
)

type WeatherCtrl struct{ svc service.WeatherService }

var _ controller.WeatherController = (*WeatherCtrl)(nil)

func New(svc service.WeatherService) *WeatherCtrl { return &WeatherCtrl{svc} }

// Fetch serves GET /weather?q=place or ?lat=..&lon=..
func (h *WeatherCtrl) Fetch(c echo.Context) error {
	ctx := c.Request().Context()
	if q := c.QueryParam("q"); q != "" {
		v, err := h.svc.ByPlace(ctx, q)
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(http.StatusOK, v)
	}

	latS, lonS := c.QueryParam("lat"), c.QueryParam("lon")
	if latS == "" || lonS == "" {
		return apperr.Respond(c, fmt.Errorf("%w: q or lat and lon are required", apperr.ErrMissingInput))
	}
	lat, err1 := strconv.ParseFloat(latS, 64)
	lon, err2 := strconv.ParseFloat(lonS, 64)
	if err1 != nil || err2 != nil {
		return apperr.Respond(c, fmt.Errorf("%w: lat and lon must be numbers", apperr.ErrInvalidRecord))
	}
	v, err := h.svc.ByCoords(ctx, lat, lon)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *WeatherCtrl) Current(c echo.Context) error {
	v, ok := h.svc.Current()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no weather fetched yet"})
	}
	return c.JSON(http.StatusOK, v)
}
