package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/market"
	"agrimanage/pkg/market/controller"
	"agrimanage/pkg/market/service"
)

type MarketCtrl struct{ svc service.MarketService }

var _ controller.MarketController = (*MarketCtrl)(nil)

func New(svc service.MarketService) *MarketCtrl { return &MarketCtrl{svc} }

// Prices refreshes the board. With ?cached=1 the last board is returned when present.
func (h *MarketCtrl) Prices(c echo.Context) error {
	if c.QueryParam("cached") == "1" {
		if b, ok := h.svc.Last(); ok {
			return c.JSON(http.StatusOK, b)
		}
	}
	b, err := h.svc.Refresh(c.Request().Context(), c.QueryParam("location"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *MarketCtrl) Locations(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"default": market.DefaultLocation, "locations": market.Locations})
}
