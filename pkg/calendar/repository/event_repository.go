package repository

import (
	"context"

	"agrimanage/entities"
)

// EventRepository stores calendar events added by hand.
type EventRepository interface {
	List(ctx context.Context) ([]entities.CalendarEvent, error)
	// Add assigns the id.
	Add(ctx context.Context, ev entities.CalendarEvent) (entities.CalendarEvent, error)
	Remove(ctx context.Context, id int64) error
}
