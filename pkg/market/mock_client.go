package market

import (
	"context"
	"time"

	"agrimanage/entities"
)

type mockClient struct{ now func() time.Time }

// NewMock returns a fixed board of five quotes dated now.
func NewMock() Client { return &mockClient{now: time.Now} }

func (m *mockClient) Prices(ctx context.Context, _ string) ([]entities.MarketPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	q := func(commodity, variety, market string, min, max, modal float64) entities.MarketPrice {
		return entities.MarketPrice{
			Commodity: commodity, Variety: variety, Market: market,
			MinPrice: min, MaxPrice: max, ModalPrice: modal,
			Unit: "Quintal", Date: now,
		}
	}
	return []entities.MarketPrice{
		q("Wheat", "Sharbati", "Delhi", 2200, 2400, 2300),
		q("Rice", "Basmati", "Punjab", 3500, 4000, 3800),
		q("Maize", "Hybrid", "Karnataka", 1800, 2100, 1950),
		q("Cotton", "Medium Staple", "Gujarat", 5500, 6000, 5800),
		q("Soybean", "JS-335", "Madhya Pradesh", 3800, 4200, 4000),
	}, nil
}
