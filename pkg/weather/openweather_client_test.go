package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimanage/pkg/apperr"
)

const currentBody = `{
  "coord":{"lon":75.85,"lat":30.9},
  "weather":[{"id":500,"main":"Rain","description":"light rain","icon":"10d"}],
  "main":{"temp":24.6,"feels_like":25.2,"pressure":1006,"humidity":83},
  "wind":{"speed":2.5},
  "dt":1760600000,
  "sys":{"country":"IN"},
  "name":"Ludhiana"
}`

func owmServer(t *testing.T, geo string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/data/2.5/weather":
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			w.Write([]byte(currentBody))
		case "/geo/1.0/direct":
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			w.Write([]byte(geo))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenWeatherByCoords(t *testing.T) {
	srv := owmServer(t, `[]`)
	c := NewOpenWeather(srv.URL+"/", "k")

	r, err := c.ByCoords(context.Background(), 30.9, 75.85)
	require.NoError(t, err)
	assert.Equal(t, "Ludhiana", r.Place)
	assert.Equal(t, "Rain", r.Condition)
	assert.Equal(t, 83, r.HumidityPct)
	assert.Equal(t, 1006, r.PressureHPa)
	assert.InDelta(t, 9.0, r.WindKMH(), 1e-9)
	assert.Equal(t, int64(1760600000), r.ObservedAt.Unix())
}

func TestOpenWeatherByPlace(t *testing.T) {
	srv := owmServer(t, `[{"name":"Ludhiana","lat":30.9,"lon":75.85,"country":"IN"}]`)
	r, err := NewOpenWeather(srv.URL, "k").ByPlace(context.Background(), "Ludhiana")
	require.NoError(t, err)
	assert.Equal(t, "Ludhiana", r.Place)
}

func TestOpenWeatherPlaceNotFound(t *testing.T) {
	srv := owmServer(t, `[]`)
	_, err := NewOpenWeather(srv.URL, "k").ByPlace(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOpenWeatherFailures(t *testing.T) {
	srv := owmServer(t, `[]`)
	_, err := NewOpenWeather(srv.URL, "wrong").ByCoords(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperr.ErrCollaboratorUnavailable)

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main":`))
	}))
	defer bad.Close()
	_, err = NewOpenWeather(bad.URL, "k").ByCoords(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperr.ErrParseFailure)

	_, err = NewOpenWeather("http://127.0.0.1:1", "k").ByCoords(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperr.ErrCollaboratorUnavailable)
}

func TestAdvisory(t *testing.T) {
	assert.Contains(t, Advisory("Rain"), "delaying field work")
	assert.Contains(t, Advisory("Clear"), "harvesting")
	assert.Contains(t, Advisory("Clouds"), "sunlight")
	assert.Contains(t, Advisory("Extreme"), "precautions")
	assert.Equal(t, Advisory("Haze"), Advisory(""))
}

func TestMockClient(t *testing.T) {
	m := NewMock()
	r, err := m.ByPlace(context.Background(), " Delhi ")
	require.NoError(t, err)
	assert.Equal(t, "Delhi", r.Place)
	_, err = m.ByPlace(context.Background(), "nowhere")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
