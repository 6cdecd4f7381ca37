package entities

import "time"

const (
	EventSourceCrop   = "crop"
	EventSourceCustom = "custom"
)

type CalendarEvent struct {
	ID    int64      `json:"id"`
	Title string     `json:"title"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Color string     `json:"color"`
	Props EventProps `json:"extended_props"`
	// Source is "crop" for projected records and "custom" for events added by hand.
	Source string `json:"source"`
	// Synthetic is true when the crop carries no dates and the span was filled in.
	Synthetic bool `json:"synthetic"`
}

type EventProps struct {
	Fertilizer Fertilizer `json:"fertilizer"`
	Yield      float64    `json:"yield"`
	Area       float64    `json:"area"`
}
