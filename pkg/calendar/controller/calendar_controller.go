package controller

import "github.com/labstack/echo/v4"

type CalendarController interface {
	List(c echo.Context) error
	AddEvent(c echo.Context) error
	RemoveEvent(c echo.Context) error
}
