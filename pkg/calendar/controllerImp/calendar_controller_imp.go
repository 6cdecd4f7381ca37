package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrimanage/pkg/apperr"
	"agrimanage/pkg/calendar/controller"
	"agrimanage/pkg/calendar/service"
)

type CalendarCtrl struct{ svc service.CalendarService }

var _ controller.CalendarController = (*CalendarCtrl)(nil)

func New(svc service.CalendarService) *CalendarCtrl { return &CalendarCtrl{svc} }

func parseDay(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperr.ErrInvalidRecord, name)
	}
	return t, nil
}

func (h *CalendarCtrl) List(c echo.Context) error {
	from, err := parseDay("from", c.QueryParam("from"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	to, err := parseDay("to", c.QueryParam("to"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	if !to.IsZero() {
		// inclusive of the whole last day
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	out, err := h.svc.Events(c.Request().Context(), from, to)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CalendarCtrl) AddEvent(c echo.Context) error {
	var body struct {
		Title      string  `json:"title"`
		Season     string  `json:"season"`
		Fertilizer string  `json:"fertilizer"`
		Yield      float64 `json:"yield"`
		Area       float64 `json:"area"`
		Start      string  `json:"start"`
		Duration   int     `json:"duration"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	start, err := parseDay("start", body.Start)
	if err != nil {
		return apperr.Respond(c, err)
	}
	ev, err := h.svc.AddEvent(c.Request().Context(), service.EventInput{
		Title:        body.Title,
		Season:       body.Season,
		Fertilizer:   body.Fertilizer,
		Yield:        body.Yield,
		Area:         body.Area,
		Start:        start,
		DurationDays: body.Duration,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *CalendarCtrl) RemoveEvent(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	if err := h.svc.RemoveEvent(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
