package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calendarCtrl "agrimanage/pkg/calendar/controller"
	cropCtrl "agrimanage/pkg/crop/controller"
	calcCtrl "agrimanage/pkg/fertilizer/controller"
	marketCtrl "agrimanage/pkg/market/controller"
	"agrimanage/pkg/middleware"
	notifyCtrl "agrimanage/pkg/notify/controller"
	weatherCtrl "agrimanage/pkg/weather/controller"
)

// Handlers groups every controller the API serves.
type Handlers struct {
	Health     interface{ Health(echo.Context) error }
	Notify     notifyCtrl.NotifyController
	Crops      cropCtrl.CropController
	Calculator calcCtrl.CalculatorController
	Dashboard  interface{ Summary(echo.Context) error }
	Calendar   calendarCtrl.CalendarController
	Settings   interface {
		Get(echo.Context) error
		Put(echo.Context) error
	}
	Export interface {
		Export(echo.Context) error
		Import(echo.Context) error
	}
	Weather weatherCtrl.WeatherController
	Market  marketCtrl.MarketController
}

// New mounts /health, /metrics and the /api/v1 routes. apiKey guards /api/v1 when non-empty.
func New(e *echo.Echo, apiKey string, h Handlers) *echo.Echo {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.APIKey(apiKey))

	api.GET("/notifications", h.Notify.List)
	api.DELETE("/notifications/:id", h.Notify.Dismiss)

	api.GET("/crops", h.Crops.List)
	api.POST("/crops", h.Crops.Create)
	api.GET("/crops/:id", h.Crops.Get)
	api.PUT("/crops/:id", h.Crops.Update)
	api.PATCH("/crops/:id", h.Crops.Patch)
	api.DELETE("/crops/:id", h.Crops.Delete)

	api.GET("/export", h.Export.Export)
	api.POST("/import", h.Export.Import)

	api.POST("/calculator", h.Calculator.Calculate)
	api.GET("/calculator/rates", h.Calculator.Rates)
	api.GET("/calculator/crops", h.Calculator.Crops)

	api.GET("/dashboard", h.Dashboard.Summary)

	api.GET("/calendar", h.Calendar.List)
	api.POST("/calendar/events", h.Calendar.AddEvent)
	api.DELETE("/calendar/events/:id", h.Calendar.RemoveEvent)

	api.GET("/settings", h.Settings.Get)
	api.PUT("/settings", h.Settings.Put)

	api.GET("/weather", h.Weather.Fetch)
	api.GET("/weather/current", h.Weather.Current)

	api.GET("/market", h.Market.Prices)
	api.GET("/market/locations", h.Market.Locations)
	return e
}
