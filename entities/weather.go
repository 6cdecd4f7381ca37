package entities

import "time"

type WeatherReport struct {
	Place       string    `json:"place"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	ObservedAt  time.Time `json:"observed_at"`
	TempC       float64   `json:"temp_c"`
	FeelsLikeC  float64   `json:"feels_like_c"`
	HumidityPct int       `json:"humidity_pct"`
	WindMS      float64   `json:"wind_ms"`
	PressureHPa int       `json:"pressure_hpa"`
	Condition   string    `json:"condition"` // Rain|Clear|Clouds|Extreme|...
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
}

// WindKMH converts the reported wind speed for display.
func (w WeatherReport) WindKMH() float64 { return w.WindMS * 3.6 }
