package repository

import "context"

// Well-known slot keys.
const (
	KeyCrops    = "crops"
	KeyDarkMode = "darkMode"
	KeyEvents   = "calendarEvents"
)

// SlotRepository is the durable key-value slot. Get returns apperr.ErrSlotEmpty
// when nothing was ever written under key.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Driver() string
}
