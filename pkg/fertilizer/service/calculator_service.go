package service

import (
	"context"

	"agrimanage/pkg/fertilizer/rates"
)

// Result is one calculation. Total is unrounded; TotalDisplay has two decimals.
type Result struct {
	Crop         string  `json:"crop"`
	Fertilizer   string  `json:"fertilizer"`
	Rate         float64 `json:"rate"`
	Area         float64 `json:"area"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
}

type CalculatorService interface {
	// Compute takes the area as typed into a form.
	Compute(crop, fertilizer, area string) (Result, error)
	ComputeFloat(crop, fertilizer string, area float64) (Result, error)
	Rates() []rates.Row
	// CropOptions lists the distinct crop names on record, first seen first.
	CropOptions(ctx context.Context) []string
}
