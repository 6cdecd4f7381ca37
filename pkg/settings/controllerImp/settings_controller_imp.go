package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimanage/pkg/settings/service"
)

type SettingsCtrl struct{ svc service.SettingsService }

func New(svc service.SettingsService) *SettingsCtrl { return &SettingsCtrl{svc} }

func (h *SettingsCtrl) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Get(c.Request().Context()))
}

// Put sets darkMode, or flips it when the body omits the field.
func (h *SettingsCtrl) Put(c echo.Context) error {
	var body struct {
		DarkMode *bool `json:"darkMode"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	var (
		out service.Settings
		err error
	)
	if body.DarkMode == nil {
		out, err = h.svc.ToggleDarkMode(c.Request().Context())
	} else {
		out, err = h.svc.SetDarkMode(c.Request().Context(), *body.DarkMode)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
