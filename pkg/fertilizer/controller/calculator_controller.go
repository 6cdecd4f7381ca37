package controller

import "github.com/labstack/echo/v4"

type CalculatorController interface {
	Calculate(c echo.Context) error
	Rates(c echo.Context) error
	Crops(c echo.Context) error
}
