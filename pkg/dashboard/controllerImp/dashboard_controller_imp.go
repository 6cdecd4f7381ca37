package controllerImp

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimanage/entities"
	"agrimanage/pkg/dashboard"
)

type CropLister interface {
	List(ctx context.Context) []entities.Crop
}

type DashboardCtrl struct{ crops CropLister }

func New(crops CropLister) *DashboardCtrl { return &DashboardCtrl{crops} }

func (h *DashboardCtrl) Summary(c echo.Context) error {
	st := dashboard.Aggregate(h.crops.List(c.Request().Context()))
	return c.JSON(http.StatusOK, map[string]any{
		"stats":   st,
		"display": st.Display(),
	})
}
