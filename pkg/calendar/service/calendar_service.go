package service

import (
	"context"
	"time"

	"agrimanage/entities"
)

// EventInput is a hand-made calendar entry spanning DurationDays from Start.
type EventInput struct {
	Title        string    `json:"title"`
	Season       string    `json:"season"`
	Fertilizer   string    `json:"fertilizer"`
	Yield        float64   `json:"yield"`
	Area         float64   `json:"area"`
	Start        time.Time `json:"start"`
	DurationDays int       `json:"duration"`
}

type CalendarService interface {
	// Events returns crop projections followed by custom events that overlap
	// [from, to]. Zero bounds are open.
	Events(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error)
	AddEvent(ctx context.Context, in EventInput) (entities.CalendarEvent, error)
	RemoveEvent(ctx context.Context, id int64) error
}
