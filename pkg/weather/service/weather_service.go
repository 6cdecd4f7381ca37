package service

import (
	"context"
	"math"

	"agrimanage/entities"
)

// View is a report plus the values the dashboard widget displays.
type View struct {
	Report    entities.WeatherReport `json:"report"`
	Advisory  string                 `json:"advisory"`
	Temp      int                    `json:"temp"`
	FeelsLike int                    `json:"feels_like"`
	WindKMH   int                    `json:"wind_kmh"`
}

func NewView(r entities.WeatherReport, advisory string) View {
	return View{
		Report:    r,
		Advisory:  advisory,
		Temp:      int(math.Round(r.TempC)),
		FeelsLike: int(math.Round(r.FeelsLikeC)),
		WindKMH:   int(math.Round(r.WindKMH())),
	}
}

// WeatherService fetches conditions. When requests overlap, the most
// recently started one wins and earlier ones are cancelled.
type WeatherService interface {
	ByCoords(ctx context.Context, lat, lon float64) (View, error)
	ByPlace(ctx context.Context, name string) (View, error)
	// Current returns the last applied view, false before the first success.
	Current() (View, bool)
}
