package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	slot "agrimanage/pkg/slot/repository"
)

var appStart = time.Now()

type HealthCtrl struct {
	db   *gorm.DB
	slot slot.SlotRepository
}

// NewHealthCtrl checks the slot backend and, when the sqlite driver is in use, the database.
func NewHealthCtrl(db *gorm.DB, s slot.SlotRepository) *HealthCtrl {
	return &HealthCtrl{db: db, slot: s}
}

type sub struct {
	OK     bool   `json:"ok"`
	Driver string `json:"driver,omitempty"`
	Err    string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]sub{}
	allOK := true

	if h.slot == nil {
		checks["slot"] = sub{OK: false, Err: "slot is nil"}
	} else if err := h.slot.Ping(ctx); err != nil {
		checks["slot"] = sub{OK: false, Driver: h.slot.Driver(), Err: "ping: " + err.Error()}
	} else {
		checks["slot"] = sub{OK: true, Driver: h.slot.Driver()}
	}

	if h.db != nil {
		d := sub{OK: true}
		sqlDB, err := h.db.DB()
		if err != nil {
			d = sub{OK: false, Err: "db.DB(): " + err.Error()}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			d = sub{OK: false, Err: "ping: " + err.Error()}
		}
		checks["database"] = d
	}

	for _, s := range checks {
		allOK = allOK && s.OK
	}
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"time":       time.Now().Format(time.RFC3339),
	})
}
