package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
)

type mockClient struct{ now func() time.Time }

// NewMock answers without network access. It knows a handful of places.
func NewMock() Client { return &mockClient{now: time.Now} }

var mockPlaces = map[string]entities.WeatherReport{
	"delhi":     {Place: "Delhi", Country: "IN", Lat: 28.6139, Lon: 77.209, Condition: "Clear", Description: "clear sky"},
	"ludhiana":  {Place: "Ludhiana", Country: "IN", Lat: 30.901, Lon: 75.8573, Condition: "Clouds", Description: "scattered clouds"},
	"mumbai":    {Place: "Mumbai", Country: "IN", Lat: 19.076, Lon: 72.8777, Condition: "Rain", Description: "moderate rain"},
	"lucknow":   {Place: "Lucknow", Country: "IN", Lat: 26.8467, Lon: 80.9462, Condition: "Haze", Description: "haze"},
	"bengaluru": {Place: "Bengaluru", Country: "IN", Lat: 12.9716, Lon: 77.5946, Condition: "Clouds", Description: "broken clouds"},
}

func (m *mockClient) fill(r entities.WeatherReport) entities.WeatherReport {
	r.ObservedAt = m.now().UTC().Truncate(time.Minute)
	r.TempC = 27.4
	r.FeelsLikeC = 29.1
	r.HumidityPct = 62
	r.WindMS = 3.2
	r.PressureHPa = 1009
	return r
}

func (m *mockClient) ByCoords(ctx context.Context, lat, lon float64) (entities.WeatherReport, error) {
	if err := ctx.Err(); err != nil {
		return entities.WeatherReport{}, err
	}
	return m.fill(entities.WeatherReport{
		Place:       fmt.Sprintf("%.2f,%.2f", lat, lon),
		Lat:         lat,
		Lon:         lon,
		Condition:   "Clear",
		Description: "clear sky",
	}), nil
}

func (m *mockClient) ByPlace(ctx context.Context, name string) (entities.WeatherReport, error) {
	if err := ctx.Err(); err != nil {
		return entities.WeatherReport{}, err
	}
	r, ok := mockPlaces[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return entities.WeatherReport{}, fmt.Errorf("location %q: %w", name, apperr.ErrNotFound)
	}
	return m.fill(r), nil
}
