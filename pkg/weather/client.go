package weather

import (
	"context"

	"agrimanage/entities"
)

// Client fetches current conditions. A place that cannot be geocoded
// returns apperr.ErrNotFound.
type Client interface {
	ByCoords(ctx context.Context, lat, lon float64) (entities.WeatherReport, error)
	ByPlace(ctx context.Context, name string) (entities.WeatherReport, error)
}
