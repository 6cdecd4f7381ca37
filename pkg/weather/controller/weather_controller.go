package controller

import "github.com/labstack/echo/v4"

type WeatherController interface {
	Fetch(c echo.Context) error
	Current(c echo.Context) error
}
