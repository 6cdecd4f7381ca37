package controllerImp

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/fertilizer/controller"
	"agrimanage/pkg/fertilizer/service"
)

type CalculatorCtrl struct{ svc service.CalculatorService }

var _ controller.CalculatorController = (*CalculatorCtrl)(nil)

func New(svc service.CalculatorService) *CalculatorCtrl { return &CalculatorCtrl{svc} }

type calcReq struct {
	CropType       string          `json:"crop_type"`
	FertilizerType string          `json:"fertilizer_type"`
	Area           json.RawMessage `json:"area"`
}

// areaText keeps the area as typed: "2", 2 and "" all arrive here.
func (r calcReq) areaText() string {
	raw := strings.TrimSpace(string(r.Area))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Area, &s); err == nil {
		return s
	}
	return raw
}

func (h *CalculatorCtrl) Calculate(c echo.Context) error {
	var req calcReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	res, err := h.svc.Compute(req.CropType, req.FertilizerType, req.areaText())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CalculatorCtrl) Rates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Rates())
}

func (h *CalculatorCtrl) Crops(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.CropOptions(c.Request().Context()))
}
