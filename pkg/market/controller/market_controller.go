package controller

import "github.com/labstack/echo/v4"

type MarketController interface {
	Prices(c echo.Context) error
	Locations(c echo.Context) error
}
