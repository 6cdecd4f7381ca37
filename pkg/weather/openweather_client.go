package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
)

type openWeather struct {
	endpoint string
	key      string
	httpc    *http.Client
}

// NewOpenWeather talks to the OpenWeatherMap current-weather and geocoding APIs.
func NewOpenWeather(endpoint, key string) Client {
	return &openWeather{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

type owmCurrent struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

type owmPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

func (c *openWeather) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("appid", c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: weather api %s: status %d", apperr.ErrCollaboratorUnavailable, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: weather api %s: %v", apperr.ErrParseFailure, path, err)
	}
	return nil
}

func (c *openWeather) ByCoords(ctx context.Context, lat, lon float64) (entities.WeatherReport, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	var out owmCurrent
	if err := c.get(ctx, "/data/2.5/weather", q, &out); err != nil {
		return entities.WeatherReport{}, err
	}
	r := entities.WeatherReport{
		Place:       out.Name,
		Country:     out.Sys.Country,
		Lat:         out.Coord.Lat,
		Lon:         out.Coord.Lon,
		ObservedAt:  time.Unix(out.Dt, 0).UTC(),
		TempC:       out.Main.Temp,
		FeelsLikeC:  out.Main.FeelsLike,
		HumidityPct: out.Main.Humidity,
		WindMS:      out.Wind.Speed,
		PressureHPa: out.Main.Pressure,
	}
	if len(out.Weather) > 0 {
		r.Condition = out.Weather[0].Main
		r.Description = out.Weather[0].Description
		r.Icon = out.Weather[0].Icon
	}
	return r, nil
}

func (c *openWeather) ByPlace(ctx context.Context, name string) (entities.WeatherReport, error) {
	q := url.Values{}
	q.Set("q", name)
	q.Set("limit", "1")
	var places []owmPlace
	if err := c.get(ctx, "/geo/1.0/direct", q, &places); err != nil {
		return entities.WeatherReport{}, err
	}
	if len(places) == 0 {
		return entities.WeatherReport{}, fmt.Errorf("location %q: %w", name, apperr.ErrNotFound)
	}
	r, err := c.ByCoords(ctx, places[0].Lat, places[0].Lon)
	if err != nil {
		return r, err
	}
	if r.Place == "" {
		r.Place = places[0].Name
	}
	if r.Country == "" {
		r.Country = places[0].Country
	}
	return r, nil
}
