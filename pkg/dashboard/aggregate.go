package dashboard

import (
	"strconv"

	"agrimanage/entities"
)

// TrendLen is how many of the newest records the yield trend shows.
const TrendLen = 5

type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Stats is derived from the record list on every call. Floats are unrounded.
type Stats struct {
	SeasonDistribution map[entities.Season]int     `json:"season_distribution"`
	FertilizerUsage    map[entities.Fertilizer]int `json:"fertilizer_usage"`
	TotalCrops         int                         `json:"total_crops"`
	TotalYield         float64                     `json:"total_yield"`
	TotalArea          float64                     `json:"total_area"`
	AvgYieldPerArea    float64                     `json:"avg_yield_per_area"`
	TrailingYield      []TrendPoint                `json:"trailing_yield"`
	RecentCrops        []entities.Crop             `json:"recent_crops"`
}

// Display holds the two-decimal renderings shown on the summary cards.
type Display struct {
	TotalYield      string `json:"total_yield"`
	TotalArea       string `json:"total_area"`
	AvgYieldPerArea string `json:"avg_yield_per_area"`
}

func (s Stats) Display() Display {
	return Display{
		TotalYield:      fixed2(s.TotalYield),
		TotalArea:       fixed2(s.TotalArea),
		AvgYieldPerArea: fixed2(s.AvgYieldPerArea),
	}
}

func fixed2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// Aggregate summarises crops. Records are taken in store order, so the
// newest record is the last one.
func Aggregate(crops []entities.Crop) Stats {
	s := Stats{
		SeasonDistribution: map[entities.Season]int{},
		FertilizerUsage:    map[entities.Fertilizer]int{},
		TotalCrops:         len(crops),
		TrailingYield:      []TrendPoint{},
		RecentCrops:        []entities.Crop{},
	}
	for _, c := range crops {
		s.SeasonDistribution[c.Season]++
		s.FertilizerUsage[c.Fertilizer]++
		s.TotalYield += c.Yield
		s.TotalArea += c.Area
	}
	if s.TotalArea > 0 {
		s.AvgYieldPerArea = s.TotalYield / s.TotalArea
	}
	for i := len(crops) - 1; i >= 0 && len(s.TrailingYield) < TrendLen; i-- {
		s.TrailingYield = append(s.TrailingYield, TrendPoint{Label: crops[i].Name, Value: crops[i].Yield})
		s.RecentCrops = append(s.RecentCrops, crops[i])
	}
	return s
}
