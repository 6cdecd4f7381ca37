package service

import (
	"context"
	"time"

	"agrimanage/entities"
)

type Board struct {
	Location    string                 `json:"location"`
	Prices      []entities.MarketPrice `json:"prices"`
	LastUpdated time.Time              `json:"last_updated"`
}

type MarketService interface {
	// Refresh fetches prices for location. On failure the previous board is kept.
	Refresh(ctx context.Context, location string) (Board, error)
	Last() (Board, bool)
}
