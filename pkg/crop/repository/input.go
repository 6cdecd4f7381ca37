package repository

import (
	"fmt"
	"math"
	"strings"
	"time"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
)

// CropInput is a record without its id, as submitted by a form or an import.
type CropInput struct {
	Name       string     `json:"name"`
	Season     string     `json:"season"`
	Fertilizer string     `json:"fertilizer"`
	Yield      float64    `json:"yield"`
	Area       float64    `json:"area"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// Validate checks the record rules and returns the canonical crop (ID unset).
func (in CropInput) Validate() (entities.Crop, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Crop{}, fmt.Errorf("%w: name is required", apperr.ErrInvalidRecord)
	}
	season, ok := entities.ParseSeason(in.Season)
	if !ok {
		return entities.Crop{}, fmt.Errorf("%w: unknown season %q", apperr.ErrInvalidRecord, in.Season)
	}
	fert, ok := entities.ParseFertilizer(in.Fertilizer)
	if !ok {
		return entities.Crop{}, fmt.Errorf("%w: unknown fertilizer %q", apperr.ErrInvalidRecord, in.Fertilizer)
	}
	if !nonNegative(in.Yield) {
		return entities.Crop{}, fmt.Errorf("%w: yield must be a non-negative number", apperr.ErrInvalidRecord)
	}
	if !nonNegative(in.Area) {
		return entities.Crop{}, fmt.Errorf("%w: area must be a non-negative number", apperr.ErrInvalidRecord)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return entities.Crop{}, fmt.Errorf("%w: end date precedes start date", apperr.ErrInvalidRecord)
	}
	return entities.Crop{
		Name:       name,
		Season:     season,
		Fertilizer: fert,
		Yield:      in.Yield,
		Area:       in.Area,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
	}, nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// InputOf turns a stored crop back into an input.
func InputOf(c entities.Crop) CropInput {
	return CropInput{
		Name:       c.Name,
		Season:     string(c.Season),
		Fertilizer: string(c.Fertilizer),
		Yield:      c.Yield,
		Area:       c.Area,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
	}
}

// CropPatch carries only the fields to change.
type CropPatch struct {
	Name       *string
	Season     *string
	Fertilizer *string
	Yield      *float64
	Area       *float64
	StartDate  *time.Time
	EndDate    *time.Time
	ClearDates bool
}

func (p CropPatch) Empty() bool {
	return p.Name == nil && p.Season == nil && p.Fertilizer == nil && p.Yield == nil &&
		p.Area == nil && p.StartDate == nil && p.EndDate == nil && !p.ClearDates
}

// Apply merges p over c. The result still has to pass Validate.
func (p CropPatch) Apply(c entities.Crop) CropInput {
	in := InputOf(c)
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Season != nil {
		in.Season = *p.Season
	}
	if p.Fertilizer != nil {
		in.Fertilizer = *p.Fertilizer
	}
	if p.Yield != nil {
		in.Yield = *p.Yield
	}
	if p.Area != nil {
		in.Area = *p.Area
	}
	if p.ClearDates {
		in.StartDate, in.EndDate = nil, nil
	}
	if p.StartDate != nil {
		in.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		in.EndDate = p.EndDate
	}
	return in
}
