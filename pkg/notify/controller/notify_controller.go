package controller

import "github.com/labstack/echo/v4"

type NotifyController interface {
	List(c echo.Context) error
	Dismiss(c echo.Context) error
}
