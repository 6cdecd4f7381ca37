package calendar

import (
	"fmt"
	"strings"
	"time"

	"agrimanage/entities"
)

// DefaultSpanMonths fills in a missing harvest date.
const DefaultSpanMonths = 3

const (
	ColorKharif = "#3b82f6"
	ColorRabi   = "#10b981"
	ColorZaid   = "#f59e0b"
	ColorOther  = "#8b5cf6"
)

// ColorFor picks the event color for a season name, any casing.
func ColorFor(season string) string {
	switch strings.ToLower(strings.TrimSpace(season)) {
	case "kharif":
		return ColorKharif
	case "rabi":
		return ColorRabi
	case "zaid":
		return ColorZaid
	default:
		return ColorOther
	}
}

// Project turns each crop into one event, in store order. A crop without a
// start date starts at now, or DefaultSpanMonths before its end date; without
// an end date it runs DefaultSpanMonths.
func Project(crops []entities.Crop, now time.Time) []entities.CalendarEvent {
	out := make([]entities.CalendarEvent, 0, len(crops))
	for _, c := range crops {
		var start, end time.Time
		switch {
		case c.StartDate != nil && c.EndDate != nil:
			start, end = *c.StartDate, *c.EndDate
		case c.StartDate != nil:
			start = *c.StartDate
			end = start.AddDate(0, DefaultSpanMonths, 0)
		case c.EndDate != nil:
			end = *c.EndDate
			start = end.AddDate(0, -DefaultSpanMonths, 0)
		default:
			start = now
			end = start.AddDate(0, DefaultSpanMonths, 0)
		}
		out = append(out, entities.CalendarEvent{
			ID:    c.ID,
			Title: fmt.Sprintf("%s (%s)", c.Name, c.Season),
			Start: start,
			End:   end,
			Color: ColorFor(string(c.Season)),
			Props: entities.EventProps{
				Fertilizer: c.Fertilizer,
				Yield:      c.Yield,
				Area:       c.Area,
			},
			Source:    entities.EventSourceCrop,
			Synthetic: c.StartDate == nil || c.EndDate == nil,
		})
	}
	return out
}

// Overlaps reports whether ev intersects [from, to]. Zero bounds are open.
func Overlaps(ev entities.CalendarEvent, from, to time.Time) bool {
	if !from.IsZero() && ev.End.Before(from) {
		return false
	}
	if !to.IsZero() && ev.Start.After(to) {
		return false
	}
	return true
}
