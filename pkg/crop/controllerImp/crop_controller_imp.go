package controllerImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/crop/controller"
	repo "agrimanage/pkg/crop/repository"
	"agrimanage/pkg/crop/service"
)

type CropCtrl struct{ svc service.CropService }

var _ controller.CropController = (*CropCtrl)(nil)

func New(svc service.CropService) *CropCtrl { return &CropCtrl{svc} }

// cropReq mirrors the add/edit form. Numbers may arrive as strings.
type cropReq struct {
	Name       *string         `json:"name"`
	Season     *string         `json:"season"`
	Fertilizer *string         `json:"fertilizer"`
	Yield      json.RawMessage `json:"yield"`
	Area       json.RawMessage `json:"area"`
	StartDate  *string         `json:"start_date"`
	EndDate    *string         `json:"end_date"`
}

func (h *CropCtrl) List(c echo.Context) error {
	crops := h.svc.List(c.Request().Context(), service.Filter{
		Query:  c.QueryParam("q"),
		Season: c.QueryParam("season"),
	})
	return c.JSON(http.StatusOK, crops)
}

func (h *CropCtrl) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	crop, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, crop)
}

func (h *CropCtrl) Create(c echo.Context) error {
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, h.svc.Reject("add", badJSON(err)))
	}
	in, err := req.input()
	if err != nil {
		return apperr.Respond(c, h.svc.Reject("add", err))
	}
	crop, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, crop)
}

func (h *CropCtrl) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, h.svc.Reject("update", badJSON(err)))
	}
	in, err := req.input()
	if err != nil {
		return apperr.Respond(c, h.svc.Reject("update", err))
	}
	crop, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, crop)
}

func (h *CropCtrl) Patch(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, h.svc.Reject("update", badJSON(err)))
	}
	p, err := req.patch()
	if err != nil {
		return apperr.Respond(c, h.svc.Reject("update", err))
	}
	if p.Empty() {
		return apperr.Respond(c, h.svc.Reject("update", fmt.Errorf("%w: nothing to update", apperr.ErrMissingInput)))
	}
	crop, err := h.svc.Patch(c.Request().Context(), id, p)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, crop)
}

func (h *CropCtrl) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func badJSON(err error) error {
	return fmt.Errorf("%w: bad json: %v", apperr.ErrInvalidRecord, err)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", apperr.ErrInvalidRecord, c.Param("id"))
	}
	return id, nil
}

// input requires every form field except the dates.
func (r cropReq) input() (repo.CropInput, error) {
	var in repo.CropInput
	if r.Name == nil || r.Season == nil || r.Fertilizer == nil {
		return in, fmt.Errorf("%w: name, season and fertilizer are required", apperr.ErrMissingInput)
	}
	in.Name, in.Season, in.Fertilizer = *r.Name, *r.Season, *r.Fertilizer
	var err error
	if in.Yield, err = number("yield", r.Yield); err != nil {
		return in, err
	}
	if in.Area, err = number("area", r.Area); err != nil {
		return in, err
	}
	if in.StartDate, err = date("start_date", r.StartDate); err != nil {
		return in, err
	}
	if in.EndDate, err = date("end_date", r.EndDate); err != nil {
		return in, err
	}
	return in, nil
}

// patch keeps only the fields present in the body. An empty date clears both dates.
func (r cropReq) patch() (repo.CropPatch, error) {
	p := repo.CropPatch{Name: r.Name, Season: r.Season, Fertilizer: r.Fertilizer}
	if r.Yield != nil {
		v, err := number("yield", r.Yield)
		if err != nil {
			return p, err
		}
		p.Yield = &v
	}
	if r.Area != nil {
		v, err := number("area", r.Area)
		if err != nil {
			return p, err
		}
		p.Area = &v
	}
	for _, d := range []*string{r.StartDate, r.EndDate} {
		if d != nil && strings.TrimSpace(*d) == "" {
			p.ClearDates = true
		}
	}
	var err error
	if p.StartDate, err = date("start_date", r.StartDate); err != nil {
		return p, err
	}
	if p.EndDate, err = date("end_date", r.EndDate); err != nil {
		return p, err
	}
	return p, nil
}

func number(field string, raw json.RawMessage) (float64, error) {
	v, err := entities.ParseNumber(raw)
	if errors.Is(err, entities.ErrNoNumber) {
		return 0, fmt.Errorf("%w: %s is required", apperr.ErrMissingInput, field)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", apperr.ErrInvalidRecord, field)
	}
	return v, nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func date(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*s)); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperr.ErrInvalidRecord, field)
}
