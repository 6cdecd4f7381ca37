package serviceImp

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"agrimanage/entities"
	"agrimanage/pkg/market"
	"agrimanage/pkg/market/service"
	"agrimanage/pkg/metrics"
	notify "agrimanage/pkg/notify/service"
)

const MsgFetchFailed = "Failed to fetch market prices. Please try again later."

type marketSvc struct {
	client market.Client
	n      notify.Notifier
	log    *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	last service.Board
	has  bool
}

func NewMarketService(client market.Client, n notify.Notifier, log *zap.Logger) service.MarketService {
	if n == nil {
		n = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &marketSvc{client: client, n: n, log: log, now: time.Now}
}

func (s *marketSvc) Refresh(ctx context.Context, location string) (service.Board, error) {
	loc, err := market.NormalizeLocation(location)
	if err != nil {
		return service.Board{}, err
	}
	start := time.Now()
	prices, err := s.client.Prices(ctx, loc)
	metrics.ObserveCollaborator("market", metrics.Result(err), time.Since(start))
	if err != nil {
		s.log.Warn("market fetch", zap.String("location", loc), zap.Error(err))
		s.n.Push(MsgFetchFailed, entities.NotifyError)
		return service.Board{}, err
	}
	if prices == nil {
		prices = []entities.MarketPrice{}
	}
	b := service.Board{Location: loc, Prices: prices, LastUpdated: s.now().UTC()}
	s.mu.Lock()
	s.last, s.has = b, true
	s.mu.Unlock()
	return b, nil
}

func (s *marketSvc) Last() (service.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.has
}
