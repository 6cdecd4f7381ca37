package market

import (
	"context"
	"fmt"
	"strings"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
)

const DefaultLocation = "india"

// Locations are the regions the price board can be filtered by.
var Locations = []string{"india", "punjab", "maharashtra", "uttar-pradesh", "karnataka"}

// NormalizeLocation lowercases loc and checks it is known. Empty means india.
func NormalizeLocation(loc string) (string, error) {
	loc = strings.ToLower(strings.TrimSpace(loc))
	if loc == "" {
		return DefaultLocation, nil
	}
	for _, l := range Locations {
		if l == loc {
			return loc, nil
		}
	}
	return "", fmt.Errorf("%w: unknown location %q", apperr.ErrInvalidRecord, loc)
}

type Client interface {
	Prices(ctx context.Context, location string) ([]entities.MarketPrice, error)
}
