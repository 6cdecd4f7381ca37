package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimanage/pkg/notify/controller"
	"agrimanage/pkg/notify/service"
)

type NotifyCtrl struct{ n service.Notifier }

var _ controller.NotifyController = (*NotifyCtrl)(nil)

func New(n service.Notifier) *NotifyCtrl { return &NotifyCtrl{n} }

func (h *NotifyCtrl) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.n.List())
}

func (h *NotifyCtrl) Dismiss(c echo.Context) error {
	if !h.n.Dismiss(c.Param("id")) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
