package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/metrics"
	notify "agrimanage/pkg/notify/service"
	"agrimanage/pkg/weather"
	"agrimanage/pkg/weather/service"
)

const (
	MsgFetched        = "Weather data fetched successfully"
	MsgFetchFailed    = "Failed to fetch weather data"
	MsgPlaceNotFound  = "Location not found"
	MsgPlaceSearchErr = "Failed to search location"
)

// ErrSuperseded is returned to a caller whose request was overtaken by a newer one.
var ErrSuperseded = fmt.Errorf("%w: weather request superseded", apperr.ErrCollaboratorUnavailable)

type weatherSvc struct {
	client weather.Client
	n      notify.Notifier
	log    *zap.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current service.View
	has     bool
}

func NewWeatherService(client weather.Client, n notify.Notifier, log *zap.Logger) service.WeatherService {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &weatherSvc{client: client, n: n, log: log}
}

// begin registers a new request and cancels the one in flight.
func (s *weatherSvc) begin(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.cancel = cancel
	return ctx, s.seq, cancel
}

// finish applies r when seq is still the latest request.
func (s *weatherSvc) finish(seq uint64, r entities.WeatherReport, err error) (service.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return service.View{}, false
	}
	s.cancel = nil
	if err != nil {
		return service.View{}, true
	}
	s.current = service.NewView(r, weather.Advisory(r.Condition))
	s.has = true
	return s.current, true
}

func (s *weatherSvc) run(ctx context.Context, op string, fetch func(context.Context) (entities.WeatherReport, error), failMsg string) (service.View, error) {
	ctx, seq, cancel := s.begin(ctx)
	defer cancel()

	start := time.Now()
	r, err := fetch(ctx)
	metrics.ObserveCollaborator("weather", metrics.Result(err), time.Since(start))

	v, latest := s.finish(seq, r, err)
	if !latest {
		return service.View{}, ErrSuperseded
	}
	if err != nil {
		s.log.Warn("weather fetch", zap.String("op", op), zap.Error(err))
		if errors.Is(err, apperr.ErrNotFound) {
			s.n.Push(MsgPlaceNotFound, entities.NotifyError)
		} else {
			s.n.Push(failMsg, entities.NotifyError)
		}
		return service.View{}, err
	}
	s.n.Push(MsgFetched, entities.NotifySuccess)
	return v, nil
}

func (s *weatherSvc) ByCoords(ctx context.Context, lat, lon float64) (service.View, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return service.View{}, fmt.Errorf("%w: coordinates out of range", apperr.ErrInvalidRecord)
	}
	return s.run(ctx, "coords", func(ctx context.Context) (entities.WeatherReport, error) {
		return s.client.ByCoords(ctx, lat, lon)
	}, MsgFetchFailed)
}

func (s *weatherSvc) ByPlace(ctx context.Context, name string) (service.View, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.View{}, fmt.Errorf("%w: location is required", apperr.ErrMissingInput)
	}
	return s.run(ctx, "place", func(ctx context.Context) (entities.WeatherReport, error) {
		return s.client.ByPlace(ctx, name)
	}, MsgPlaceSearchErr)
}

func (s *weatherSvc) Current() (service.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.has
}
